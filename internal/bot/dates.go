package bot

import (
	"errors"
	"strings"
	"time"

	"shelfwatch/internal/models"
)

const dateInputLayout = "02.01.2006"

// errDateInPast is returned when the (adjusted) expiration date has already passed
var errDateInPast = errors.New("expiration date is in the past")

// parseExpirationDate parses user date input as day.month.year with a 4-digit
// year. Common separators are normalized to dots first, so "01-02.2026",
// "01/02/2026" and "01 02 2026" all parse to the same date.
func parseExpirationDate(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	for _, sep := range []string{"-", "/", " ", ","} {
		s = strings.ReplaceAll(s, sep, ".")
	}
	return time.ParseInLocation(dateInputLayout, s, time.UTC)
}

// validateExpirationDate rejects dates whose adjusted deadline is strictly
// before today. For returnable products the adjusted deadline is the nominal
// expiration date minus the return window; the nominal date itself is never
// modified.
func validateExpirationDate(expDate time.Time, returnable bool, today time.Time) error {
	adjusted := expDate
	if returnable {
		adjusted = expDate.AddDate(0, 0, -models.ReturnWindowDays)
	}
	if adjusted.Before(today) {
		return errDateInPast
	}
	return nil
}
