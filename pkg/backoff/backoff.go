package backoff

import "time"

// ladder holds the wait applied after each failed attempt: 30s after the
// first, 60s after the second, 120s thereafter.
var ladder = []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second}

// RetryDelay returns the backoff to wait after the given failed attempt
// (1-based). Attempts beyond the ladder reuse its last rung; non-positive
// attempts yield no delay.
func RetryDelay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	if attempt > len(ladder) {
		return ladder[len(ladder)-1]
	}
	return ladder[attempt-1]
}
