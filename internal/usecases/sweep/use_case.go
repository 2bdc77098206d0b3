package sweep

import (
	"context"
	"time"

	"github.com/duarte-dev/birthday-notification-service/internal/domain"
	"github.com/duarte-dev/birthday-notification-service/internal/domain/port/store"
	"github.com/duarte-dev/birthday-notification-service/internal/observability/metrics"
	"github.com/duarte-dev/birthday-notification-service/internal/usecases/dispatch"
	"github.com/duarte-dev/birthday-notification-service/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// birthdaySpec runs the primary sweep every minute.
	birthdaySpec = "* * * * *"
	// recoverySpec runs the unsent-message recovery sweep at midnight.
	recoverySpec = "0 0 * * *"

	birthdaySweepName = "birthday"
	recoverySweepName = "recovery"

	recoveryWindow = 24 * time.Hour
)

// SweepScheduler owns the two polling loops that select due users and hand
// them to the dispatcher. Start returns once the cron entries are registered;
// Stop returns a context that is done when in-flight sweeps have finished.
type SweepScheduler struct {
	store      store.UserStore
	dispatcher dispatch.DispatchBatchUseCaseInterface
	window     time.Duration

	c   *cron.Cron
	now func() time.Time
}

func NewSweepScheduler(
	userStore store.UserStore,
	dispatcher dispatch.DispatchBatchUseCaseInterface,
	window time.Duration,
) *SweepScheduler {
	if window <= 0 {
		window = time.Minute
	}
	return &SweepScheduler{
		store:      userStore,
		dispatcher: dispatcher,
		window:     window,
		now:        time.Now,
	}
}

func (s *SweepScheduler) Start() error {
	s.c = cron.New()
	if _, err := s.c.AddFunc(birthdaySpec, s.runBirthdaySweep); err != nil {
		return err
	}
	if _, err := s.c.AddFunc(recoverySpec, s.runRecoverySweep); err != nil {
		return err
	}
	s.c.Start()
	logger.L().Info("Sweep scheduler started",
		zap.String("birthdaySpec", birthdaySpec),
		zap.String("recoverySpec", recoverySpec),
		zap.Duration("window", s.window),
	)
	return nil
}

// Stop halts scheduling of new sweeps without blocking in-flight work. The
// returned context completes when running sweeps have drained.
func (s *SweepScheduler) Stop() context.Context {
	if s.c == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return s.c.Stop()
}

// runBirthdaySweep selects PENDING users whose notification time fell inside
// the most recent window and dispatches birthday greetings for them.
func (s *SweepScheduler) runBirthdaySweep() {
	now := s.now()
	s.run(birthdaySweepName, []domain.MessageStatus{domain.StatusPending}, now.Add(-s.window), now)
}

// runRecoverySweep re-selects FAILED and still-PENDING users from the last
// day, picking up messages that failed transiently or were missed.
func (s *SweepScheduler) runRecoverySweep() {
	now := s.now()
	s.run(recoverySweepName, []domain.MessageStatus{domain.StatusFailed, domain.StatusPending}, now.Add(-recoveryWindow), now)
}

func (s *SweepScheduler) run(name string, statuses []domain.MessageStatus, from, to time.Time) {
	ctx := context.Background()

	users, err := s.store.FindDue(ctx, statuses, from, to)
	if err != nil {
		// Skip this cycle; the next tick retries naturally.
		logger.L().Error("Sweep selection query failed, skipping cycle",
			zap.String("sweep", name),
			zap.Time("windowStart", from),
			zap.Time("windowEnd", to),
			zap.Error(err),
		)
		metrics.SweepFailures.WithLabelValues(name).Inc()
		return
	}

	if len(users) == 0 {
		return
	}

	logger.L().Info("Sweep selected due users",
		zap.String("sweep", name),
		zap.Int("count", len(users)),
		zap.Time("windowStart", from),
		zap.Time("windowEnd", to),
	)
	metrics.SweepUsersSelected.WithLabelValues(name).Add(float64(len(users)))

	s.dispatcher.Execute(ctx, users, domain.KindBirthday)
}
