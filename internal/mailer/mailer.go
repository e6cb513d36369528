// Package mailer delivers stock alert e-mail to shop owners. Delivery is
// best-effort: callers log failures and never let them affect the mutation
// that triggered the alert.
package mailer

import (
	"crypto/tls"
	"fmt"
	"log"

	"shopstock-backend/internal/config"

	"gopkg.in/gomail.v2"
)

var (
	dialer *gomail.Dialer
	from   string
)

func Init(cfg *config.Config) {
	from = cfg.MailFrom
	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return
	}
	dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost}
}

// SendLowStockAlert mails the shop owner that a product dipped below the
// threshold.
func SendLowStockAlert(to, productName string, currentStock int) error {
	subject := fmt.Sprintf("Low Stock Alert: %s", productName)
	unit := "units"
	if currentStock == 1 {
		unit = "unit"
	}
	body := fmt.Sprintf(
		"<p>A product in your inventory is running low on stock:</p>"+
			"<h2>%s</h2><p><strong>%d %s remaining</strong></p>"+
			"<p>Consider restocking soon to avoid missed sales.</p>",
		productName, currentStock, unit)
	return send(to, subject, body)
}

// SendOutOfStockAlert mails the shop owner that a product hit zero.
func SendOutOfStockAlert(to, productName string) error {
	subject := fmt.Sprintf("URGENT - Out of Stock: %s", productName)
	body := fmt.Sprintf(
		"<p>A product in your inventory is completely out of stock:</p>"+
			"<h2>%s</h2><p><strong>0 units remaining</strong></p>"+
			"<p>This product can no longer be sold until it is restocked.</p>",
		productName)
	return send(to, subject, body)
}

func send(to, subject, htmlBody string) error {
	if dialer == nil {
		// SMTP not configured; keep the signal in the logs.
		log.Printf("SMTP not configured - would send %q to %s", subject, to)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
