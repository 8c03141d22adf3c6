package services

import "errors"

// Sentinel errors handlers map to HTTP statuses. Idempotent re-submissions
// (double approve, duplicate activation) are not errors; those paths return
// a message instead.
var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotActivated         = errors.New("affiliate account not activated")
	ErrPaymentMethodMissing = errors.New("payment method not saved")
	ErrBelowMinimum         = errors.New("minimum ₹100 required to withdraw")
	ErrReturnAlreadyOpen    = errors.New("return already requested")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailTaken           = errors.New("user already exists")
	ErrInvalidOTP           = errors.New("invalid or expired OTP")
)
