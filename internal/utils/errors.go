package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrUserNotFound       = errors.New("user_not_found")
	ErrEmailExists        = errors.New("email_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrOTPNotRequested = errors.New("otp_not_requested")
	ErrOTPExpired      = errors.New("otp_expired")
	ErrOTPMismatch     = errors.New("otp_mismatch")

	ErrProjectNotFound = errors.New("project_not_found")

	// For external service failures (SendGrid, Sheets, Mongo)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
