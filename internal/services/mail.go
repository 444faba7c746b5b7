package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/saaaathvik/consultansease/internal/config"
	"github.com/saaaathvik/consultansease/internal/utils"
)

// MailSender delivers one-time password-reset codes.
type MailSender interface {
	SendOTP(ctx context.Context, toEmail, code string) error
}

type sendGridMailSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewSendGridMailSender(cfg *config.Config) MailSender {
	return &sendGridMailSender{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromName:  cfg.SendGridFromName,
		fromEmail: cfg.SendGridFromEmail,
	}
}

func (m *sendGridMailSender) SendOTP(ctx context.Context, toEmail, code string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail("", toEmail)
	subject := "OTP for Password Reset - " + m.fromName

	plainTextContent := fmt.Sprintf(
		"Your OTP for password reset is %s. It is valid for 5 minutes.", code,
	)
	htmlContent := fmt.Sprintf(
		otpEmailHTML,
		"Password Reset Code",
		"Please use the following code to reset your password. This code will expire in 5 minutes.",
		code,
		time.Now().Year(),
	)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	_, sendErr := m.client.Send(message)
	if sendErr != nil {
		utils.Logger.WithError(sendErr).Errorf("Failed to send OTP email to %s via SendGrid", toEmail)
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, sendErr)
	}
	return nil
}
