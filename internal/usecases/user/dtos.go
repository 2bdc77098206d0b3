package user

import (
	"time"

	"github.com/duarte-dev/birthday-notification-service/internal/domain"
)

// CreateUserInputDTO carries the payload for POST /user. Binding covers the
// structural checks; birthday and location semantics are validated in the use
// case.
type CreateUserInputDTO struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Birthday  string `json:"birthday" binding:"required"`
	Location  string `json:"location" binding:"required"`
}

// UpdateUserInputDTO carries the payload for PUT /user/:id. Every field is
// optional; present fields replace the stored ones.
type UpdateUserInputDTO struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Birthday  *string `json:"birthday"`
	Location  *string `json:"location"`
}

type UserOutputDTO struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Birthday         string    `json:"birthday"`
	Location         string    `json:"location"`
	NextNotification time.Time `json:"nextNotification"`
	MessageStatus    string    `json:"messageStatus"`
}

func toOutput(u domain.User) UserOutputDTO {
	return UserOutputDTO{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Birthday:         u.Birthday.Format("2006-01-02"),
		Location:         u.Location,
		NextNotification: u.NextNotification,
		MessageStatus:    string(u.MessageStatus),
	}
}
