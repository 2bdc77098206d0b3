package user

import "github.com/duarte-dev/birthday-notification-service/internal/domain/port/store"

func NewUser(userStore store.UserStore) *UserHandler {
	usecase := NewUserUseCase(userStore)
	handler := NewUserHandler(usecase)
	return handler
}
