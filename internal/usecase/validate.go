package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRx   = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneRx   = regexp.MustCompile(`^\d{10}$`)
	pincodeRx = regexp.MustCompile(`^\d{6}$`)
	panRx     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	adharRx   = regexp.MustCompile(`^\d{12}$`)
)

const minPasswordLen = 6

func validateFullName(fullName string) error {
	if len(strings.TrimSpace(fullName)) < 2 {
		return fmt.Errorf("%w: full name must be at least 2 characters long", ErrValidation)
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRx.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("%w: please enter a valid email address", ErrValidation)
	}
	return nil
}

func validatePhone(phone string) error {
	if !phoneRx.MatchString(phone) {
		return fmt.Errorf("%w: please enter a valid 10-digit phone number", ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLen)
	}
	return nil
}

func validatePincode(pincode string) error {
	if pincode != "" && !pincodeRx.MatchString(pincode) {
		return fmt.Errorf("%w: please enter a valid 6-digit pincode", ErrValidation)
	}
	return nil
}

func validatePAN(pan string) error {
	if pan != "" && !panRx.MatchString(pan) {
		return fmt.Errorf("%w: please enter a valid PAN number", ErrValidation)
	}
	return nil
}

func validateAdhar(adhar string) error {
	if adhar != "" && !adharRx.MatchString(adhar) {
		return fmt.Errorf("%w: please enter a valid 12-digit Aadhaar number", ErrValidation)
	}
	return nil
}
