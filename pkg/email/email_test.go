package email

import (
	"os"
	"testing"
)

func TestSendIssueAssignedEmail(t *testing.T) {
	// 从环境变量读取测试配置
	recipientEmail := os.Getenv("TEST_RECIPIENT_EMAIL")
	fullName := os.Getenv("TEST_ASSIGNEE_NAME")

	// 接收者邮箱未设置时跳过，避免CI环境无SMTP可用
	if recipientEmail == "" {
		t.Skip("Skipping email sending test: TEST_RECIPIENT_EMAIL environment variable not set.")
	}

	if fullName == "" {
		fullName = "测试用户"
	}

	t.Logf("Attempting to send assignment email to %s using SMTP server %s:%s...",
		recipientEmail, os.Getenv("SMTP_HOST"), os.Getenv("SMTP_PORT"))
	t.Log("Ensure SMTP environment variables are set: SMTP_HOST, SMTP_PORT, SMTP_SENDER_EMAIL, SMTP_USERNAME, SMTP_PASSWORD")

	err := SendIssueAssignedEmail(recipientEmail, fullName, "卫生间墙砖空鼓", "测试项目", "High")
	if err != nil {
		t.Errorf("SendIssueAssignedEmail failed: %v", err)
		t.Log("Please ensure all SMTP related environment variables (SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_SENDER_EMAIL) are correctly set and the SMTP server is reachable.")
	} else {
		t.Logf("Email sent request processed for %s. Please check the inbox to confirm reception.", recipientEmail)
	}
}
