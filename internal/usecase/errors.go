package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so login failures never reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not authorized to perform this action")
	// ErrValidation is the base for malformed-input failures; wrap it with
	// field detail.
	ErrValidation      = errors.New("validation failed")
	ErrMeetingConflict = errors.New("a meeting is already scheduled at this place on the selected date")
	// ErrMailDelivery marks a notification failure. During signup it is
	// returned alongside the created records, not instead of them.
	ErrMailDelivery = errors.New("failed to send OTP email")
)
