// Package otp generates and validates the one-time codes used for email
// verification and password reset.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// TTL is the validity window of a freshly issued code.
const TTL = 5 * time.Minute

var (
	ErrInvalidCode = errors.New("invalid OTP")
	ErrExpired     = errors.New("OTP has expired")
)

// Purpose distinguishes the two independent challenge slots on an account.
type Purpose string

const (
	PurposeEmailVerify   Purpose = "email_verify"
	PurposePasswordReset Purpose = "password_reset"
)

// codeSpan covers 100000..999999, so codes are 6 digits with no leading zero.
const (
	codeMin  = 100000
	codeSpan = 900000
)

// GenerateCode returns a uniformly random 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Validate checks a submitted code against a stored challenge at the given
// instant. It is pure: callers clear the stored challenge only on nil error,
// so a failed attempt never consumes or extends it.
//
// A missing or mismatched code fails with ErrInvalidCode; a matching code at
// or past the expiry instant fails with ErrExpired.
func Validate(code string, expiresAt time.Time, submitted string, now time.Time) error {
	if code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(submitted)) != 1 {
		return ErrInvalidCode
	}
	if !now.Before(expiresAt) {
		return ErrExpired
	}
	return nil
}
