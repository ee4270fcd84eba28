package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template 邮件模板
type Template struct {
	tmpl *template.Template
}

// NewTemplate 从 HTML 字符串创建模板
func NewTemplate(htmlContent string) (*Template, error) {
	tmpl, err := template.New("email").Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("解析邮件模板失败: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Render 渲染模板
func (t *Template) Render(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板失败: %w", err)
	}
	return buf.String(), nil
}

// SendWithTemplate 使用模板发送邮件
func (c *Client) SendWithTemplate(to string, subject string, tmpl *Template, data interface{}) error {
	body, err := tmpl.Render(data)
	if err != nil {
		return err
	}
	return c.SendHTML(to, subject, body)
}

// WelcomeTemplate 欢迎邮件模板
const WelcomeTemplate = `
<!DOCTYPE html>
<html dir="rtl" lang="fa">
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Tahoma, sans-serif; line-height: 1.8; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2196F3; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .button { display: inline-block; padding: 12px 24px; background-color: #2196F3;
                  color: white; text-decoration: none; border-radius: 4px; margin: 20px 0; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>به {{.AppName}} خوش آمدید</h1>
        </div>
        <div class="content">
            <p>{{.FullName}} عزیز،</p>
            <p>حساب کاربری شما با موفقیت ساخته شد.</p>
            <p>دوره آزمایشی شما تا {{.TrialDays}} روز فعال است.</p>
            {{if .ActionURL}}
            <div style="text-align: center;">
                <a href="{{.ActionURL}}" class="button">ورود به داشبورد</a>
            </div>
            {{end}}
        </div>
        <div class="footer">
            <p>این ایمیل به صورت خودکار ارسال شده است، لطفاً به آن پاسخ ندهید.</p>
        </div>
    </div>
</body>
</html>
`

// WelcomeData 欢迎邮件模板数据
type WelcomeData struct {
	AppName   string // 应用名称
	FullName  string // 用户姓名
	TrialDays int    // 试用天数
	ActionURL string // 操作链接（可选）
}

var welcomeTemplate = &Template{tmpl: template.Must(template.New("welcome").Parse(WelcomeTemplate))}

// SendWelcome 发送欢迎邮件
func (c *Client) SendWelcome(to string, data WelcomeData) error {
	return c.SendWithTemplate(to, data.AppName+" | خوش آمدید", welcomeTemplate, data)
}
