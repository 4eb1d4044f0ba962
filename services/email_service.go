package services

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"strings"
	"time"

	"cosmobits-leads-api/config"
	"cosmobits-leads-api/models"
)

// Indirection over the mailer so tests can stub delivery.
var (
	sendMailFunc            = config.SendMail
	sendMailWithReplyToFunc = config.SendMailWithReplyTo
)

func baseURL() string {
	if url := os.Getenv("BASE_URL"); url != "" {
		return url
	}
	return "https://cosmobits.tech"
}

func contactEmail() string {
	if addr := os.Getenv("CONTACT_EMAIL"); addr != "" {
		return addr
	}
	return "hello@cosmobits.tech"
}

// SendIntakeNotifications delivers the admin new-lead alert and, if that
// succeeds, the confirmation to the lead. The submission is already saved when
// this runs; a failure is returned for bookkeeping, never to fail the request.
func SendIntakeNotifications(sub *models.ContactSubmission) (sent bool, errMsg string) {
	submittedAt := formatSubmittedAt(time.Now())

	adminHTML := buildAdminAlertEmail(sub, submittedAt)
	subject := fmt.Sprintf("New Contact: %s - %s", sub.Service, sub.Name)
	if err := sendMailWithReplyToFunc([]string{contactEmail()}, sub.Email, subject, adminHTML); err != nil {
		log.Printf("admin alert email failed (lead=%s): %v", sub.ID, err)
		return false, err.Error()
	}

	confirmationHTML := buildConfirmationEmail(sub.Name, sub.Service)
	if err := sendMailFunc([]string{sub.Email}, "Thank you for contacting CosmoBits Technologies", confirmationHTML); err != nil {
		log.Printf("confirmation email failed (lead=%s): %v", sub.ID, err)
		return false, err.Error()
	}

	return true, ""
}

// SendLeadEmail delivers an ad-hoc admin-to-lead message. The caller records
// the history entry after a successful send.
func SendLeadEmail(sub *models.ContactSubmission, subject, message string) error {
	html := buildOutgoingEmail(sub.Name, subject, message)
	return sendMailFunc([]string{sub.Email}, subject, html)
}

func formatSubmittedAt(t time.Time) string {
	loc, err := time.LoadLocation("Africa/Nairobi")
	if err == nil {
		t = t.In(loc)
	}
	return t.Format("Monday, January 2, 2006 at 3:04 PM")
}

func escapeMultiline(s string) string {
	escaped := template.HTMLEscapeString(strings.TrimSpace(s))
	escaped = strings.ReplaceAll(strings.ReplaceAll(escaped, "\r\n", "\n"), "\r", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br />")
}

func emailShell(title, inner string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
%s
  </div>
  <p style="margin:16px 0 0 0;font-size:12px;line-height:1.6;color:#6b7280;text-align:center;">
    CosmoBits Technologies &middot; <a href="%s" style="color:#6b7280;">%s</a>
  </p>
</div>
</body>
</html>`, template.HTMLEscapeString(title), inner, baseURL(), strings.TrimPrefix(baseURL(), "https://"))
}

func buildConfirmationEmail(name, service string) string {
	inner := fmt.Sprintf(`    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Hi %s,</p>
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Thank you for reaching out to CosmoBits Technologies about <strong>%s</strong>. We have received your message and will get back to you within one business day.</p>
    <p style="margin:0;font-size:16px;line-height:1.7;color:#111827;">&mdash; The CosmoBits Team</p>`,
		template.HTMLEscapeString(name),
		template.HTMLEscapeString(service),
	)
	return emailShell("Thank you for contacting CosmoBits Technologies", inner)
}

func buildAdminAlertEmail(sub *models.ContactSubmission, submittedAt string) string {
	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return fmt.Sprintf(`    <p style="margin:0 0 8px 0;font-size:15px;line-height:1.6;color:#111827;"><strong>%s:</strong> %s</p>
`, label, template.HTMLEscapeString(value))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">New contact form submission received on %s.</p>
`, template.HTMLEscapeString(submittedAt)))
	b.WriteString(row("Name", sub.Name))
	b.WriteString(row("Email", sub.Email))
	if sub.Company != nil {
		b.WriteString(row("Company", *sub.Company))
	}
	if sub.Phone != nil {
		b.WriteString(row("Phone", *sub.Phone))
	}
	b.WriteString(row("Service", sub.Service))
	b.WriteString(fmt.Sprintf(`    <p style="margin:16px 0 0 0;font-size:15px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>`, escapeMultiline(sub.Message)))

	return emailShell(fmt.Sprintf("New Contact: %s - %s", sub.Service, sub.Name), b.String())
}

func buildOutgoingEmail(recipientName, subject, message string) string {
	inner := fmt.Sprintf(`    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Hi %s,</p>
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
    <p style="margin:0;font-size:16px;line-height:1.7;color:#111827;">Best regards,<br />CosmoBits Technologies</p>`,
		template.HTMLEscapeString(recipientName),
		escapeMultiline(message),
	)
	return emailShell(subject, inner)
}
