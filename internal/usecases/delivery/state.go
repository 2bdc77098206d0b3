package delivery

import "net/http"

// Outcome is the result of applying one attempt to the retry state machine.
type Outcome int

const (
	// OutcomeRetry loops back to another attempt after a backoff wait.
	OutcomeRetry Outcome = iota
	// OutcomeSuccess is the terminal state for a 200 response.
	OutcomeSuccess
	// OutcomePermanentFailure is the terminal state for any 4xx outcome.
	OutcomePermanentFailure
	// OutcomeExhausted is the terminal state when the attempt budget runs out.
	OutcomeExhausted
)

// attemptState carries the only mutable piece of the retry loop: how many
// attempts have failed so far.
type attemptState struct {
	failedAttempts int
	maxAttempts    int
}

// attemptResult is what one outbound call produced: the endpoint's status
// code, or a transport error with status 0.
type attemptResult struct {
	status int
	err    error
}

// transition applies one attempt result to the state machine and returns the
// outcome plus the next state. It is pure: the driver owns all side effects,
// including the single persistence write per terminal outcome.
func transition(st attemptState, res attemptResult) (Outcome, attemptState) {
	switch {
	case res.err == nil && res.status == http.StatusOK:
		return OutcomeSuccess, st
	case res.status >= 400 && res.status < 500:
		// 4xx as a direct response or carried alongside an error: no retry.
		return OutcomePermanentFailure, st
	default:
		// 5xx, network error, timeout, unexpected status: transient.
		st.failedAttempts++
		if st.failedAttempts >= st.maxAttempts {
			return OutcomeExhausted, st
		}
		return OutcomeRetry, st
	}
}
