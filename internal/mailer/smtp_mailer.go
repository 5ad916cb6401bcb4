package mailer

import (
	"fmt"

	"github.com/eliteassociate/realty-service/internal/otp"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends OTP emails over SMTP.
type SMTPMailer struct {
	dialer     *gomail.Dialer
	from       string
	senderName string
	logger     *zap.Logger
}

func NewSMTPMailer(host string, port int, username, password, fromEmail, senderName string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer:     gomail.NewDialer(host, port, username, password),
		from:       fromEmail,
		senderName: senderName,
		logger:     logger.Named("SMTPMailer"),
	}
}

func subjectFor(purpose otp.Purpose) string {
	if purpose == otp.PurposePasswordReset {
		return "Password Reset OTP - Elite Properties"
	}
	return "Email Verification OTP - Elite Properties"
}

func introFor(purpose otp.Purpose) string {
	if purpose == otp.PurposePasswordReset {
		return "You have requested to reset your password for your Elite Properties account."
	}
	return "Thank you for registering with Elite Properties!"
}

// SendOTP delivers the code. The expiry wording must stay in sync with
// otp.TTL.
func (s *SMTPMailer) SendOTP(toEmail, toName, code string, purpose otp.Purpose) error {
	s.logger.Info("Sending OTP email", zap.String("toEmail", toEmail), zap.String("purpose", string(purpose)))

	htmlBody := fmt.Sprintf(`<p>Hello %s,</p>
<p>%s</p>
<p>Your One-Time Password (OTP) is: <b>%s</b></p>
<p>This OTP will expire in 5 minutes. If you did not request this, please ignore this email.</p>
<p>Never share this OTP with anyone. Elite Properties support will never ask for your OTP.</p>`,
		toName, introFor(purpose), code)

	m := gomail.NewMessage()
	if s.senderName != "" {
		m.SetAddressHeader("From", s.from, s.senderName)
	} else {
		m.SetHeader("From", s.from)
	}
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subjectFor(purpose))
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send OTP email", zap.String("toEmail", toEmail), zap.Error(err))
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}
