package user

import (
	"context"
	"testing"
	"time"

	"github.com/duarte-dev/birthday-notification-service/internal/domain"
	"github.com/duarte-dev/birthday-notification-service/internal/domain/port/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) FindDue(ctx context.Context, statuses []domain.MessageStatus, from, to time.Time) ([]domain.User, error) {
	args := m.Called(ctx, statuses, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserStore) Save(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- Helpers ---

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(store *MockUserStore) *userUseCase {
	uc := NewUserUseCase(store).(*userUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func validInput() CreateUserInputDTO {
	return CreateUserInputDTO{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Birthday:  "1990-05-15",
		Location:  "America/New_York",
	}
}

// --- Tests ---

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid input", func(t *testing.T) {
		mockStore := new(MockUserStore)
		mockStore.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
		uc := newTestUseCase(mockStore)

		user, err := uc.Create(ctx, validInput())

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, domain.StatusPending, user.MessageStatus)
		// 09:00 EDT on the next occurrence.
		assert.Equal(t, time.Date(2025, time.May, 15, 13, 0, 0, 0, time.UTC), user.NextNotification)
		mockStore.AssertExpectations(t)
	})

	invalidCases := []struct {
		name   string
		mutate func(*CreateUserInputDTO)
	}{
		{name: "Future birthday", mutate: func(in *CreateUserInputDTO) { in.Birthday = "2030-01-01" }},
		{name: "Malformed birthday", mutate: func(in *CreateUserInputDTO) { in.Birthday = "15/05/1990" }},
		{name: "Unknown timezone", mutate: func(in *CreateUserInputDTO) { in.Location = "Mars/OlympusMons" }},
	}

	for _, tt := range invalidCases {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockUserStore)
			uc := newTestUseCase(mockStore)

			input := validInput()
			tt.mutate(&input)
			_, err := uc.Create(ctx, input)

			assert.ErrorIs(t, err, ErrValidation)
			mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("Duplicate email surfaces store error", func(t *testing.T) {
		mockStore := new(MockUserStore)
		mockStore.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(store.ErrDuplicateEmail).Once()
		uc := newTestUseCase(mockStore)

		_, err := uc.Create(ctx, validInput())

		assert.ErrorIs(t, err, store.ErrDuplicateEmail)
	})
}

func TestUserUseCase_Update(t *testing.T) {
	ctx := context.Background()
	existing := domain.User{
		ID:               "user-1",
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@example.com",
		Birthday:         time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC),
		Location:         "America/New_York",
		NextNotification: time.Date(2025, time.May, 15, 13, 0, 0, 0, time.UTC),
		MessageStatus:    domain.StatusFailedPermanent,
	}

	t.Run("Edit recomputes schedule and re-arms delivery", func(t *testing.T) {
		mockStore := new(MockUserStore)
		found := existing
		mockStore.On("FindByID", ctx, "user-1").Return(&found, nil).Once()
		mockStore.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
		uc := newTestUseCase(mockStore)

		location := "Asia/Tokyo"
		user, err := uc.Update(ctx, "user-1", UpdateUserInputDTO{Location: &location})

		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", user.Location)
		assert.Equal(t, domain.StatusPending, user.MessageStatus, "FAILED_PERMANENT unfreezes on edit")
		// 09:00 JST on May 15.
		assert.Equal(t, time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC), user.NextNotification)
		mockStore.AssertExpectations(t)
	})

	t.Run("Missing user", func(t *testing.T) {
		mockStore := new(MockUserStore)
		mockStore.On("FindByID", ctx, "missing").Return(nil, store.ErrNotFound).Once()
		uc := newTestUseCase(mockStore)

		_, err := uc.Update(ctx, "missing", UpdateUserInputDTO{})

		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Blank first name rejected", func(t *testing.T) {
		mockStore := new(MockUserStore)
		found := existing
		mockStore.On("FindByID", ctx, "user-1").Return(&found, nil).Once()
		uc := newTestUseCase(mockStore)

		blank := "   "
		_, err := uc.Update(ctx, "user-1", UpdateUserInputDTO{FirstName: &blank})

		assert.ErrorIs(t, err, ErrValidation)
		mockStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing user", func(t *testing.T) {
		mockStore := new(MockUserStore)
		mockStore.On("Delete", ctx, "user-1").Return(nil).Once()
		uc := newTestUseCase(mockStore)

		assert.NoError(t, uc.Delete(ctx, "user-1"))
		mockStore.AssertExpectations(t)
	})

	t.Run("Missing user", func(t *testing.T) {
		mockStore := new(MockUserStore)
		mockStore.On("Delete", ctx, "missing").Return(store.ErrNotFound).Once()
		uc := newTestUseCase(mockStore)

		assert.ErrorIs(t, uc.Delete(ctx, "missing"), store.ErrNotFound)
	})
}
