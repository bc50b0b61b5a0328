package mailing

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/internal/utils"
	"bytes"
	"context"
	"fmt"
	"gopkg.in/gomail.v2"
	"html/template"
	"strconv"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.SMTPEmail != ""
}

func send(emailConfig MailConfig, toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", emailConfig.SMTPEmail, emailConfig.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

var lowStockTemplate = template.Must(template.New("low-stock").Parse(`<p>The following ingredients are at or below their reorder level:</p>
<table>
<tr><th>Ingredient</th><th>Stock</th><th>Minimum</th></tr>
{{range .}}<tr><td>{{.Name}}</td><td>{{.CurrentStock}} {{.Unit}}</td><td>{{.MinStock}} {{.Unit}}</td></tr>
{{end}}</table>`))

// LowStockMailer emails a reorder alert to a fixed recipient.
type LowStockMailer struct {
	config MailConfig
	to     string
}

func NewLowStockMailer(to string) *LowStockMailer {
	return &LowStockMailer{config: LoadMailConfig(), to: to}
}

func (m *LowStockMailer) NotifyLowStock(_ context.Context, alerts []*domain.LowStockAlert) error {
	if len(alerts) == 0 || m.to == "" || !m.config.Enabled() {
		return nil
	}

	var body bytes.Buffer
	if err := lowStockTemplate.Execute(&body, alerts); err != nil {
		return err
	}

	subject := fmt.Sprintf("Low stock: %d ingredient(s) need reordering", len(alerts))
	return send(m.config, m.to, subject, body.String())
}
