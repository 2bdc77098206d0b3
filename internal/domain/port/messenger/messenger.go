package messenger

import "context"

// Messenger is the outbound messaging collaborator: a single HTTP-style POST
// of {email, message}. Send returns the endpoint's status code, or a non-nil
// error (with status 0) when the call itself failed — timeout, connection
// refused, and the like. Classification of the outcome belongs to the caller.
type Messenger interface {
	Send(ctx context.Context, email, body string) (int, error)
}
