package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid. Delivery is best
// effort; callers log and move on when it fails.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping email to", toEmail)
		return nil
	}

	from := mail.NewEmail("Course Marketplace", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendPurchaseConfirmation emails the student after a completed purchase.
func SendPurchaseConfirmation(toName, toEmail, courseTitle string, amount float64) {
	subject := "Enrollment confirmed: " + courseTitle
	body := fmt.Sprintf(`
	<h2>You're enrolled!</h2>
	<p>Hi %s,</p>
	<p>Your payment of %.2f %s for <b>%s</b> was successful. The course is now
	available under your enrollments.</p>`,
		toName, amount, config.AppConfig.CurrencyCode, courseTitle)

	if err := SendEmail(toName, toEmail, subject, body); err != nil {
		log.Printf("Failed to send purchase confirmation to %s: %v", toEmail, err)
	}
}
