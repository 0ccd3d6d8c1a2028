package services

import (
	"crypto/tls"
	"fmt"

	"github.com/playscore/playscore-backend/internal/config"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(config *config.Config) *EmailService {
	return &EmailService{config: config}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}

func (s *EmailService) SendContentApprovedEmail(email, gameTitle, excerpt string) error {
	subject := "Your post on PlayScore is live"
	body := fmt.Sprintf(`
		<h2>Your post was approved</h2>
		<p>Your post on <strong>%s</strong> has been reviewed and is now visible to everyone:</p>
		<blockquote>%s</blockquote>
		<p>Thanks for contributing,<br>The PlayScore Team</p>
	`, gameTitle, excerpt)

	return s.SendEmail(email, subject, body)
}

func (s *EmailService) SendContentRejectedEmail(email, gameTitle, excerpt, reason string) error {
	subject := "Your post on PlayScore was removed"
	body := fmt.Sprintf(`
		<h2>Your post was not approved</h2>
		<p>A moderator reviewed your post on <strong>%s</strong> and removed it:</p>
		<blockquote>%s</blockquote>
		<p><strong>Reason:</strong> %s</p>
		<p>You can edit and resubmit it from your profile.</p>
		<p>The PlayScore Team</p>
	`, gameTitle, excerpt, reason)

	return s.SendEmail(email, subject, body)
}

func (s *EmailService) SendGameApprovedEmail(email, gameTitle string) error {
	subject := "Your game submission was approved"
	body := fmt.Sprintf(`
		<h2>Congratulations!</h2>
		<p><strong>%s</strong> is now listed on PlayScore and open for ratings.</p>
		<p>The PlayScore Team</p>
	`, gameTitle)

	return s.SendEmail(email, subject, body)
}

func (s *EmailService) SendGameRejectedEmail(email, gameTitle, reason string) error {
	subject := "Your game submission was rejected"
	body := fmt.Sprintf(`
		<h2>Submission rejected</h2>
		<p>Your submission <strong>%s</strong> was not accepted.</p>
		<p><strong>Reason:</strong> %s</p>
		<p>You can update the submission and try again.</p>
		<p>The PlayScore Team</p>
	`, gameTitle, reason)

	return s.SendEmail(email, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(email, resetToken, baseURL string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", baseURL, resetToken)

	subject := "Password Reset Request"
	body := fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>We received a request to reset the password for <strong>%s</strong>.</p>
		<p><a href="%s">Reset your password</a></p>
		<p>Or copy this link into your browser:</p>
		<p>%s</p>
		<p>This link expires in 1 hour. If you didn't request a reset, ignore this email.</p>
		<p>The PlayScore Team</p>
	`, email, resetLink, resetLink)

	return s.SendEmail(email, subject, body)
}
