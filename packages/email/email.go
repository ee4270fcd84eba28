package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// Config 邮件服务配置
type Config struct {
	Host     string `koanf:"host"`     // SMTP 服务器地址，如 smtp.gmail.com
	Port     int    `koanf:"port"`     // SMTP 端口，通常 587 (TLS) 或 465 (SSL)
	Username string `koanf:"username"` // 发件人邮箱
	Password string `koanf:"password"` // 邮箱密码或授权码
	From     string `koanf:"from"`     // 发件人显示名称，如 "Madrese <noreply@example.com>"
	UseTLS   bool   `koanf:"tls"`      // 是否使用 TLS，默认 true
}

// Enabled reports whether an SMTP server is configured at all.
func (c *Config) Enabled() bool {
	return c != nil && c.Host != ""
}

// Message 邮件消息
type Message struct {
	From        string   // 发件人
	To          []string // 收件人列表
	Cc          []string // 抄送列表
	Bcc         []string // 密送列表
	Subject     string   // 邮件主题
	Body        string   // 邮件正文（纯文本或 HTML）
	ContentType string   // 内容类型，默认 "text/plain"，可设为 "text/html"
}

// Client 邮件客户端
type Client struct {
	config *Config
}

// NewClient 创建邮件客户端
func NewClient(config *Config) *Client {
	// 设置默认端口
	if config.Port == 0 {
		config.Port = 587
	}
	return &Client{config: config}
}

func (m *Message) validate() error {
	if m.From == "" {
		return fmt.Errorf("发件人不能为空")
	}
	if len(m.To) == 0 {
		return fmt.Errorf("收件人不能为空")
	}
	if m.Subject == "" {
		return fmt.Errorf("邮件主题不能为空")
	}
	return nil
}

// bytes 组装邮件，头部顺序固定
func (m *Message) bytes() []byte {
	contentType := m.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=UTF-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	if len(m.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(m.Cc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}

// Send 发送邮件
func (c *Client) Send(msg *Message) error {
	if msg.From == "" {
		msg.From = c.config.From
	}
	if err := msg.validate(); err != nil {
		return err
	}

	// 收集所有收件人
	recipients := append([]string{}, msg.To...)
	recipients = append(recipients, msg.Cc...)
	recipients = append(recipients, msg.Bcc...)

	auth := smtp.PlainAuth("", c.config.Username, c.config.Password, c.config.Host)
	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)

	// 根据配置选择是否使用 TLS
	if c.config.UseTLS || c.config.Port == 587 {
		return c.sendWithTLS(addr, auth, msg.From, recipients, msg.bytes())
	}

	return smtp.SendMail(addr, auth, msg.From, recipients, msg.bytes())
}

// sendWithTLS 使用 TLS 发送邮件
func (c *Client) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("连接 SMTP 服务器失败: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: c.config.Host}); err != nil {
		return fmt.Errorf("启动 TLS 失败: %w", err)
	}

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP 认证失败: %w", err)
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("设置发件人失败: %w", err)
	}

	for _, recipient := range to {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("设置收件人失败: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("准备发送邮件内容失败: %w", err)
	}

	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("写入邮件内容失败: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("关闭邮件内容写入失败: %w", err)
	}

	return client.Quit()
}

// SendHTML 发送 HTML 邮件（便捷方法）
func (c *Client) SendHTML(to string, subject string, htmlBody string) error {
	return c.Send(&Message{
		To:          []string{to},
		Subject:     subject,
		Body:        htmlBody,
		ContentType: "text/html; charset=UTF-8",
	})
}
