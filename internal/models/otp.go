package models

import "time"

// OTPEntry is one live password-reset code, keyed by email in the
// in-process store. At most one entry exists per email.
type OTPEntry struct {
	Code      string
	ExpiresAt time.Time
}
