package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
	"github.com/resend/resend-go/v2"
)

var (
	emailProvider = os.Getenv("EMAIL_PROVIDER") // "resend" (default) or "smtp"
	resendAPIKey  = os.Getenv("RESEND_API_KEY")

	smtpHost = os.Getenv("SMTP_HOST")
	smtpPort = func() int {
		p, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if p == 0 {
			p = 587
		}
		return p
	}()
	smtpUser      = os.Getenv("SMTP_USER")
	smtpPass      = os.Getenv("SMTP_PASS")
	mailFrom      = os.Getenv("MAIL_FROM") // e.g. "CosmoBits Technologies <hello@cosmobits.tech>"
	skipTLSVerify = os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1"
)

// SendMail delivers an HTML email through the configured provider.
func SendMail(to []string, subject, html string) error {
	return SendMailWithReplyTo(to, "", subject, html)
}

// SendMailWithReplyTo is SendMail with an optional Reply-To header, used for
// admin alerts so a reply goes straight to the lead.
func SendMailWithReplyTo(to []string, replyTo, subject, html string) error {
	if len(to) == 0 {
		return nil
	}
	if mailFrom == "" {
		return fmt.Errorf("mail not configured (MAIL_FROM)")
	}

	if emailProvider == "smtp" {
		return sendViaSMTP(to, replyTo, subject, html)
	}
	return sendViaResend(to, replyTo, subject, html)
}

func sendViaResend(to []string, replyTo, subject, html string) error {
	if resendAPIKey == "" {
		return fmt.Errorf("resend not configured (RESEND_API_KEY)")
	}

	client := resend.NewClient(resendAPIKey)
	params := &resend.SendEmailRequest{
		From:    mailFrom,
		To:      to,
		Subject: subject,
		Html:    html,
	}
	if replyTo != "" {
		params.ReplyTo = replyTo
	}

	_, err := client.Emails.Send(params)
	return err
}

func sendViaSMTP(to []string, replyTo, subject, html string) error {
	if smtpHost == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", mailFrom)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetBody("text/html", html)

	d := mail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)

	// Mandatory STARTTLS on 587 (Gmail/Office365 style setups).
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         smtpHost,
		InsecureSkipVerify: skipTLSVerify, // dev only
	}

	return d.DialAndSend(m)
}
