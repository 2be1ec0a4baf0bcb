package models

import "time"

// DateLayout is the ISO form used for expiration dates in storage and messages
const DateLayout = "2006-01-02"

// ReturnWindowDays is the fixed return window for returnable products: the
// user must act this many days before the nominal expiration date. The offset
// is applied at validation and scan time only, never persisted.
const ReturnWindowDays = 4

// Product represents a registered perishable product
type Product struct {
	ID             int64
	OwnerID        int64
	PhotoFileID    string
	ExpirationDate time.Time // date only, UTC midnight
	Returnable     bool
}

// DateOnly strips the time component, leaving a UTC midnight calendar date
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
