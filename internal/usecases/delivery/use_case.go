package delivery

import (
	"context"
	"time"

	"github.com/duarte-dev/birthday-notification-service/internal/domain"
	"github.com/duarte-dev/birthday-notification-service/internal/domain/port/messenger"
	"github.com/duarte-dev/birthday-notification-service/internal/domain/port/store"
	"github.com/duarte-dev/birthday-notification-service/internal/observability/metrics"
	"github.com/duarte-dev/birthday-notification-service/pkg/backoff"
	"github.com/duarte-dev/birthday-notification-service/pkg/logger"
	"go.uber.org/zap"
)

const DefaultMaxRetries = 3

// DeliverMessageUseCaseInterface defines the contract for delivering one
// message to one user. Implementations absorb delivery failures: the user
// record carries the terminal state, the caller gets nothing to handle.
type DeliverMessageUseCaseInterface interface {
	Execute(ctx context.Context, user *domain.User, kind domain.MessageKind)
}

type DeliverMessageUseCase struct {
	messenger   messenger.Messenger
	store       store.UserStore
	maxAttempts int
	sendTimeout time.Duration

	// Injectable for tests; wall clock and real sleep in production.
	sleep func(ctx context.Context, d time.Duration)
	now   func() time.Time
}

func NewDeliverMessageUseCase(
	messenger messenger.Messenger,
	userStore store.UserStore,
	maxAttempts int,
	sendTimeout time.Duration,
) *DeliverMessageUseCase {
	if maxAttempts <= 0 {
		logger.L().Warn("Invalid maxAttempts provided, defaulting",
			zap.Int("providedMaxAttempts", maxAttempts),
			zap.Int("defaultMaxAttempts", DefaultMaxRetries),
		)
		maxAttempts = DefaultMaxRetries
	}
	if sendTimeout <= 0 {
		sendTimeout = 5 * time.Second
	}
	return &DeliverMessageUseCase{
		messenger:   messenger,
		store:       userStore,
		maxAttempts: maxAttempts,
		sendTimeout: sendTimeout,
		sleep:       sleepContext,
		now:         time.Now,
	}
}

// Execute composes and delivers one message, retrying transient failures with
// backoff, then persists exactly one terminal write: success cycles the user
// to PENDING with a refreshed NextNotification, a 4xx freezes it as
// FAILED_PERMANENT, an exhausted attempt budget marks it FAILED.
func (u *DeliverMessageUseCase) Execute(ctx context.Context, user *domain.User, kind domain.MessageKind) {
	body := domain.ComposeMessage(*user, kind)
	start := u.now()
	st := attemptState{maxAttempts: u.maxAttempts}

	for {
		callCtx, cancel := context.WithTimeout(ctx, u.sendTimeout)
		status, err := u.messenger.Send(callCtx, user.Email, body)
		cancel()

		var outcome Outcome
		outcome, st = transition(st, attemptResult{status: status, err: err})

		switch outcome {
		case OutcomeSuccess:
			logger.L().Info("Message sent successfully",
				zap.String("email", user.Email),
				zap.String("kind", string(kind)),
				zap.Int("attempt", st.failedAttempts+1),
			)
			metrics.MessagesSent.WithLabelValues(string(kind)).Inc()
			metrics.ObserveDeliveryDuration(string(kind), true, start)
			u.finalizeSuccess(ctx, user)
			return

		case OutcomePermanentFailure:
			logger.L().Error("Permanent failure sending message",
				zap.String("email", user.Email),
				zap.String("kind", string(kind)),
				zap.Int("status", status),
				zap.Error(err),
			)
			metrics.MessagesFailed.WithLabelValues(string(kind), "true").Inc()
			metrics.ObserveDeliveryDuration(string(kind), false, start)
			user.MessageStatus = domain.StatusFailedPermanent
			u.persist(ctx, user)
			return

		case OutcomeExhausted:
			logger.L().Error("Failed to send message after max attempts",
				zap.String("email", user.Email),
				zap.String("kind", string(kind)),
				zap.Int("maxAttempts", u.maxAttempts),
			)
			metrics.MessagesFailed.WithLabelValues(string(kind), "false").Inc()
			metrics.ObserveDeliveryDuration(string(kind), false, start)
			user.MessageStatus = domain.StatusFailed
			u.persist(ctx, user)
			return

		case OutcomeRetry:
			delay := backoff.RetryDelay(st.failedAttempts)
			logger.L().Warn("Transient failure sending message, scheduling retry",
				zap.String("email", user.Email),
				zap.String("kind", string(kind)),
				zap.Int("status", status),
				zap.Int("attempt", st.failedAttempts),
				zap.Duration("backoff", delay),
				zap.Error(err),
			)
			metrics.MessagesRetried.WithLabelValues(string(kind)).Inc()
			u.sleep(ctx, delay)
		}
	}
}

// finalizeSuccess performs the single success write: refreshed
// NextNotification and status cycled back to PENDING for the next occurrence.
func (u *DeliverMessageUseCase) finalizeSuccess(ctx context.Context, user *domain.User) {
	nextAt, err := domain.NextNotificationAt(user.Birthday, user.Location, u.now())
	if err != nil {
		// Unreachable for validated records; keep the old timestamp rather
		// than invent one.
		logger.L().Error("Failed to recompute next notification time",
			zap.String("email", user.Email),
			zap.String("location", user.Location),
			zap.Error(err),
		)
	} else {
		user.NextNotification = nextAt
	}
	user.MessageStatus = domain.StatusPending
	u.persist(ctx, user)
}

// persist writes the terminal state. Store failures are logged, not returned:
// the dispatch pipeline never aborts siblings over one record.
func (u *DeliverMessageUseCase) persist(ctx context.Context, user *domain.User) {
	if err := u.store.Save(ctx, user); err != nil {
		logger.L().Error("Failed to persist delivery outcome",
			zap.String("email", user.Email),
			zap.String("messageStatus", string(user.MessageStatus)),
			zap.Error(err),
		)
	}
}

// sleepContext waits for d or until ctx is done, whichever comes first. Only
// the single delivery task suspends; siblings and the scheduler keep running.
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
