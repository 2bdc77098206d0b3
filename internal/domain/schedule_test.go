package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextNotificationAt(t *testing.T) {
	tests := []struct {
		name     string
		birthday time.Time
		location string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "Upcoming birthday this year",
			birthday: date(1990, time.May, 15),
			location: "America/New_York",
			now:      time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC),
			// 09:00 EDT is UTC-4.
			expected: time.Date(2024, time.May, 15, 13, 0, 0, 0, time.UTC),
		},
		{
			name:     "Birthday already passed rolls to next year",
			birthday: date(1990, time.May, 15),
			location: "America/New_York",
			now:      time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2025, time.May, 15, 13, 0, 0, 0, time.UTC),
		},
		{
			name:     "Occurrence exactly now rolls to next year",
			birthday: date(1985, time.December, 31),
			location: "Asia/Tokyo",
			// 2024-12-31T00:00Z is exactly 09:00 JST on the birthday.
			now:      time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Nine o'clock is local wall clock across DST start",
			birthday: date(2000, time.October, 5),
			location: "Australia/Sydney",
			now:      time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			// DST begins 2025-10-05 02:00 in Sydney, so 09:00 is UTC+11.
			expected: time.Date(2025, time.October, 4, 22, 0, 0, 0, time.UTC),
		},
		{
			name:     "UTC location",
			birthday: date(1970, time.January, 2),
			location: "UTC",
			now:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextNotificationAt(tt.birthday, tt.location, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, got.After(tt.now), "result must be strictly in the future")

			loc, err := time.LoadLocation(tt.location)
			require.NoError(t, err)
			local := got.In(loc)
			assert.Equal(t, notificationHour, local.Hour())
			assert.Equal(t, tt.birthday.Month(), local.Month())
			assert.Equal(t, tt.birthday.Day(), local.Day())
		})
	}
}

func TestNextNotificationAt_Deterministic(t *testing.T) {
	birthday := date(1992, time.August, 20)
	now := time.Date(2025, time.March, 3, 15, 4, 5, 0, time.UTC)

	first, err := NextNotificationAt(birthday, "Europe/Berlin", now)
	require.NoError(t, err)
	second, err := NextNotificationAt(birthday, "Europe/Berlin", now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNextNotificationAt_InvalidTimezone(t *testing.T) {
	_, err := NextNotificationAt(date(1990, time.May, 15), "Not/AZone", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
