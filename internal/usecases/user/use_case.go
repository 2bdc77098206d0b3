package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/duarte-dev/birthday-notification-service/internal/domain"
	"github.com/duarte-dev/birthday-notification-service/internal/domain/port/store"
	"github.com/google/uuid"
)

// ErrValidation wraps any semantic validation failure so the handler can map
// it to a 400 without inspecting messages.
var ErrValidation = errors.New("validation failed")

// birthdayLayouts accepts date-only and full RFC 3339 timestamps.
var birthdayLayouts = []string{"2006-01-02", time.RFC3339}

// UserUseCase is the CRUD surface over user records. Create and Update own
// the nextNotification recomputation and the reset to PENDING; deleted users
// simply stop being selected by the sweeps.
type UserUseCase interface {
	Create(ctx context.Context, input CreateUserInputDTO) (domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInputDTO) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userUseCase struct {
	store store.UserStore
	now   func() time.Time
}

func NewUserUseCase(userStore store.UserStore) UserUseCase {
	return &userUseCase{
		store: userStore,
		now:   time.Now,
	}
}

func (u *userUseCase) Create(ctx context.Context, input CreateUserInputDTO) (domain.User, error) {
	birthday, err := u.parseBirthday(input.Birthday)
	if err != nil {
		return domain.User{}, err
	}

	nextAt, err := domain.NextNotificationAt(birthday, input.Location, u.now())
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user := domain.User{
		ID:               uuid.New().String(),
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Email:            input.Email,
		Birthday:         birthday,
		Location:         input.Location,
		NextNotification: nextAt,
		MessageStatus:    domain.StatusPending,
	}

	if err := u.store.Create(ctx, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (u *userUseCase) Update(ctx context.Context, id string, input UpdateUserInputDTO) (domain.User, error) {
	user, err := u.store.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			return domain.User{}, fmt.Errorf("%w: first name cannot be blank", ErrValidation)
		}
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			return domain.User{}, fmt.Errorf("%w: last name cannot be blank", ErrValidation)
		}
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Birthday != nil {
		birthday, err := u.parseBirthday(*input.Birthday)
		if err != nil {
			return domain.User{}, err
		}
		user.Birthday = birthday
	}
	if input.Location != nil {
		user.Location = *input.Location
	}

	// Any edit recomputes the schedule and re-arms delivery, including for
	// records frozen in FAILED_PERMANENT.
	nextAt, err := domain.NextNotificationAt(user.Birthday, user.Location, u.now())
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	user.NextNotification = nextAt
	user.MessageStatus = domain.StatusPending

	if err := u.store.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (u *userUseCase) Delete(ctx context.Context, id string) error {
	return u.store.Delete(ctx, id)
}

func (u *userUseCase) parseBirthday(value string) (time.Time, error) {
	var birthday time.Time
	var err error
	for _, layout := range birthdayLayouts {
		birthday, err = time.Parse(layout, value)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birthday must be an ISO 8601 date", ErrValidation)
	}
	if birthday.After(u.now()) {
		return time.Time{}, fmt.Errorf("%w: birthday cannot be a future date", ErrValidation)
	}
	return birthday, nil
}
