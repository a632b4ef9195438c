package utils

import (
	"academia/config"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Outbound email goes through SendGrid with an explicit request timeout.
// Failures are logged and never propagated to the caller: a failed email
// must not roll back the write that triggered it.

func sendgridClient() *sendgrid.Client {
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	return client
}

// SendEmail sends a single HTML email through SendGrid
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	sendgrid.DefaultClient = &rest.Client{HTTPClient: &http.Client{Timeout: 10 * time.Second}}

	from := sgmail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", getEmailTemplate(subject, htmlBody))

	resp, err := sendgridClient().Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid rejected email, code: %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the platform HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A40; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A40; line-height: 1.6; }
			.content h2 { color: #1A1A40; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6D9DD7; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ACADEMIA BLOCKCHAIN</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Academia Blockchain. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Academia Blockchain"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Academia Blockchain</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been created. You can now explore knowledge paths, join events and start earning badges.</p>
	`, name)

	go SendEmail(email, name, subject, body)
}

// 2. Event registration confirmation
func SendEventRegistrationEmail(email, name, eventTitle string, dateStart time.Time) {
	subject := "Registration Confirmed: " + eventTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are registered for <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Starts:</strong> %s
		</div>
		<p>We will send you a reminder shortly before the event begins.</p>
	`, name, eventTitle, dateStart.Format("Mon, 02 Jan 2006 15:04 MST"))

	go SendEmail(email, name, subject, body)
}

// 3. Event reminder (sent by the scheduler)
func SendEventReminderEmail(email, name, eventTitle string, dateStart time.Time) {
	subject := "Upcoming Event: " + eventTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that <strong>%s</strong> starts on %s.</p>
	`, name, eventTitle, dateStart.Format("Mon, 02 Jan 2006 15:04 MST"))

	go SendEmail(email, name, subject, body)
}

// 4. Knowledge path completed (to the path author)
func SendPathCompletedEmail(email, name, studentName, pathTitle string) {
	subject := "Path Completed: " + pathTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p><strong>%s</strong> has completed your knowledge path <strong>%s</strong>.</p>
		<p>They may now request a certificate, which you can review from your dashboard.</p>
	`, name, studentName, pathTitle)

	go SendEmail(email, name, subject, body)
}

// 5. Certificate decision (to the requester)
func SendCertificateDecisionEmail(email, name, pathTitle, status, reason string) {
	subject := fmt.Sprintf("Certificate Request %s: %s", status, pathTitle)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your certificate request for <strong>%s</strong> has been <strong>%s</strong>.</p>
	`, name, pathTitle, status)
	if reason != "" {
		body += fmt.Sprintf(`<div class="info-box">%s</div>`, reason)
	}

	go SendEmail(email, name, subject, body)
}
