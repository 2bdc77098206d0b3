package domain

import "time"

// MessageStatus tracks where a user's current notification sits in its
// delivery lifecycle.
type MessageStatus string

const (
	StatusPending         MessageStatus = "PENDING"
	StatusSent            MessageStatus = "SENT"
	StatusFailed          MessageStatus = "FAILED"
	StatusFailedPermanent MessageStatus = "FAILED_PERMANENT"
)

// MessageKind selects which greeting template is composed for a user.
type MessageKind string

const (
	KindBirthday    MessageKind = "birthday"
	KindAnniversary MessageKind = "anniversary"
)

// User is the record produced by the CRUD surface and consumed by the
// dispatch pipeline. Birthday and Location are validated upstream;
// NextNotification is always the next future 09:00-local occurrence of the
// birthday's month/day as of its last recomputation.
type User struct {
	ID               string        `json:"id"`
	FirstName        string        `json:"firstName"`
	LastName         string        `json:"lastName"`
	Email            string        `json:"email"`
	Birthday         time.Time     `json:"birthday"`
	Location         string        `json:"location"`
	NextNotification time.Time     `json:"nextNotification"`
	MessageStatus    MessageStatus `json:"messageStatus"`
}
