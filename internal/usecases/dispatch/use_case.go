package dispatch

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/duarte-dev/birthday-notification-service/internal/domain"
	"github.com/duarte-dev/birthday-notification-service/pkg/logger"
	"go.uber.org/zap"
)

const DefaultConcurrencyLimit = 10

// MessageDeliverer is what the dispatcher drives for each due user.
type MessageDeliverer interface {
	Execute(ctx context.Context, user *domain.User, kind domain.MessageKind)
}

// DispatchBatchUseCaseInterface defines the contract for fanning a selection
// of due users out to the deliverer with bounded concurrency.
type DispatchBatchUseCaseInterface interface {
	Execute(ctx context.Context, users []domain.User, kind domain.MessageKind)
}

type DispatchBatchUseCase struct {
	deliverer MessageDeliverer
	limit     int
}

func NewDispatchBatchUseCase(deliverer MessageDeliverer, limit int) *DispatchBatchUseCase {
	if limit <= 0 {
		logger.L().Warn("Invalid concurrency limit provided, defaulting",
			zap.Int("providedLimit", limit),
			zap.Int("defaultLimit", DefaultConcurrencyLimit),
		)
		limit = DefaultConcurrencyLimit
	}
	return &DispatchBatchUseCase{
		deliverer: deliverer,
		limit:     limit,
	}
}

// Execute partitions users into consecutive groups of the concurrency limit
// and delivers each group concurrently, waiting for the whole group before
// starting the next. One delivery's failure or panic never aborts siblings or
// subsequent groups.
func (u *DispatchBatchUseCase) Execute(ctx context.Context, users []domain.User, kind domain.MessageKind) {
	for start := 0; start < len(users); start += u.limit {
		end := start + u.limit
		if end > len(users) {
			end = len(users)
		}
		group := users[start:end]

		var wg sync.WaitGroup
		wg.Add(len(group))
		for i := range group {
			user := &group[i]
			go func() {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						logger.L().Error("Panic recovered in delivery task",
							zap.Any("panicValue", r),
							zap.String("stacktrace", string(debug.Stack())),
							zap.String("email", user.Email),
							zap.String("kind", string(kind)),
						)
					}
				}()
				u.deliverer.Execute(ctx, user, kind)
			}()
		}
		wg.Wait()
	}
}
