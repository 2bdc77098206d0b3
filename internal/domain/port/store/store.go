package store

import (
	"context"
	"errors"
	"time"

	"github.com/duarte-dev/birthday-notification-service/internal/domain"
)

var (
	// ErrNotFound is returned when no user matches the given id.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write would violate the unique
	// email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the persistence collaborator. The sweep scheduler reads
// through FindDue; the delivery client writes terminal outcomes through Save.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindDue returns users whose status is one of the given statuses and
	// whose NextNotification falls within [from, to], both bounds inclusive,
	// ordered by NextNotification ascending.
	FindDue(ctx context.Context, statuses []domain.MessageStatus, from, to time.Time) ([]domain.User, error)

	// Save replaces the delivery-mutable fields (MessageStatus and
	// NextNotification) of an existing user.
	Save(ctx context.Context, user *domain.User) error
}
