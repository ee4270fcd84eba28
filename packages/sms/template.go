package sms

import (
	"bytes"
	"fmt"
	"text/template"
)

// Template SMS 模板
type Template struct {
	tmpl *template.Template
}

// NewTemplate 从字符串创建模板
func NewTemplate(name, content string) (*Template, error) {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse sms template %s: %w", name, err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Render 渲染模板
func (t *Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render sms template: %w", err)
	}
	return buf.String(), nil
}

// VerificationCodeTemplate 验证码短信模板
const VerificationCodeTemplate = `{{.AppName}}
کد تأیید شما: {{.Code}}
این کد تا {{.ExpireMinutes}} دقیقه معتبر است. آن را در اختیار دیگران قرار ندهید.`

// VerificationCodeData 验证码模板数据
type VerificationCodeData struct {
	AppName       string
	Code          string
	ExpireMinutes int
}

var verificationCodeTemplate = template.Must(template.New("verification").Parse(VerificationCodeTemplate))

// RenderVerificationCode renders the phone-verification text.
func RenderVerificationCode(appName, code string, expireMinutes int) (string, error) {
	t := &Template{tmpl: verificationCodeTemplate}
	return t.Render(VerificationCodeData{
		AppName:       appName,
		Code:          code,
		ExpireMinutes: expireMinutes,
	})
}
