package service

import (
	"net/smtp"
	"os"
)

// ==================== EmailService 邮件服务 ====================

// EmailService 邮件发送接口
type EmailService interface {
	Send(to, subject, body string) error
}

type smtpEmail struct{}

// NewEmailService 创建 SMTP 邮件服务
// 通过 SMTP_HOST / SMTP_PORT / SMTP_FROM 环境变量配置
func NewEmailService() EmailService { return &smtpEmail{} }

func (s *smtpEmail) Send(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	addr := host + ":" + port

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	// 本地 MailHog 调试不需要 auth
	return smtp.SendMail(addr, nil, from, []string{to}, []byte(msg))
}
