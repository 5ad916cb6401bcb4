package mailer

import "github.com/eliteassociate/realty-service/internal/otp"

// Mailer delivers one-time codes to users. Implementations must never log
// the code alongside the recipient.
type Mailer interface {
	SendOTP(toEmail, toName, code string, purpose otp.Purpose) error
}
