package email

import (
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"strings"
)

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// LoadSMTPConfigFromEnv loads SMTP configuration from environment variables
func LoadSMTPConfigFromEnv() (*SMTPConfig, error) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	sender := os.Getenv("SMTP_SENDER_EMAIL")

	if host == "" || portStr == "" || sender == "" {
		return nil, fmt.Errorf("SMTP_HOST, SMTP_PORT, and SMTP_SENDER_EMAIL must be set")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
	}

	return &SMTPConfig{
		Host:     host,
		Port:     port,
		Username: username, // Username can be empty for some SMTP servers
		Password: password, // Password can be empty for some SMTP servers
		Sender:   sender,
	}, nil
}

// SendIssueAssignedEmail 向被指派的用户发送问题指派通知。
func SendIssueAssignedEmail(toEmail, fullName, issueTitle, projectName, priority string) error {
	config, err := LoadSMTPConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load SMTP config: %w", err)
	}

	subject := "【工程质检】您有新的整改问题待处理"
	body := fmt.Sprintf(`
<html>
<body>
    <p>%s，您好！</p>
    <p>项目 <b>%s</b> 有一条整改问题被指派给您：</p>
    <p>问题：%s</p>
    <p>优先级：%s</p>
    <p>请登录系统查看详情并及时处理。</p>
    <p><small>（这是一封自动发送的邮件，请勿直接回复。）</small></p>
</body>
</html>
`, fullName, projectName, issueTitle, priority)

	// Construct email message with CRLF line endings
	// and correct Content-Type header
	msg := []byte(strings.Join([]string{
		"To: " + toEmail,
		"From: " + config.Sender,
		"Subject: " + subject,
		"MIME-version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n"))

	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	if err := smtp.SendMail(addr, auth, config.Sender, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
