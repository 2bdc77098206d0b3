package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimezone is returned when a user's location is not a recognized
// IANA zone name. The validation layer rejects these before records reach the
// dispatch pipeline, but the calculator never panics on one.
var ErrInvalidTimezone = errors.New("invalid timezone")

// notificationHour is the local wall-clock hour at which greetings go out.
const notificationHour = 9

// NextNotificationAt returns the next future 09:00 local occurrence of the
// birthday's month and day in the given timezone, as an absolute instant.
//
// The 09:00 is wall-clock time in the target zone, so the result is correct
// across UTC offsets and DST transitions. If this year's occurrence is not
// strictly after now (in local time), the result falls in the next year.
func NextNotificationAt(birthday time.Time, location string, now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, location)
	}

	localNow := now.In(loc)
	next := time.Date(localNow.Year(), birthday.Month(), birthday.Day(), notificationHour, 0, 0, 0, loc)
	if !next.After(localNow) {
		next = time.Date(localNow.Year()+1, birthday.Month(), birthday.Day(), notificationHour, 0, 0, 0, loc)
	}

	return next.UTC(), nil
}
