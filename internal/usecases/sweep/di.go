package sweep

import (
	"github.com/duarte-dev/birthday-notification-service/configs"
	"github.com/duarte-dev/birthday-notification-service/internal/domain/port/messenger"
	"github.com/duarte-dev/birthday-notification-service/internal/domain/port/store"
	"github.com/duarte-dev/birthday-notification-service/internal/usecases/delivery"
	"github.com/duarte-dev/birthday-notification-service/internal/usecases/dispatch"
)

// NewSweep wires the full dispatch pipeline: delivery client, batch
// dispatcher, and the two-sweep scheduler on top.
func NewSweep(userStore store.UserStore, sender messenger.Messenger, cfg *configs.DispatchConfig) *SweepScheduler {
	deliverUseCase := delivery.NewDeliverMessageUseCase(sender, userStore, cfg.MaxRetries, cfg.SendTimeout)
	dispatchUseCase := dispatch.NewDispatchBatchUseCase(deliverUseCase, cfg.ConcurrencyLimit)
	return NewSweepScheduler(userStore, dispatchUseCase, cfg.SweepWindow)
}
