package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{name: "First failed attempt", attempt: 1, expected: 30 * time.Second},
		{name: "Second failed attempt", attempt: 2, expected: 60 * time.Second},
		{name: "Third failed attempt", attempt: 3, expected: 120 * time.Second},
		{name: "Beyond the ladder clamps to last rung", attempt: 7, expected: 120 * time.Second},
		{name: "Zero attempt", attempt: 0, expected: 0},
		{name: "Negative attempt", attempt: -1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RetryDelay(tt.attempt))
		})
	}
}
