package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	port "github.com/duarte-dev/birthday-notification-service/internal/domain/port/messenger"
)

// EmailServiceMessenger implements messenger.Messenger against the external
// email-service HTTP endpoint.
type EmailServiceMessenger struct {
	url    string
	client *http.Client
}

// NewEmailServiceMessenger builds the adapter. Per-attempt timeouts come from
// the caller's context, so the underlying client carries none of its own.
func NewEmailServiceMessenger(url string) *EmailServiceMessenger {
	return &EmailServiceMessenger{
		url:    url,
		client: &http.Client{},
	}
}

var _ port.Messenger = (*EmailServiceMessenger)(nil)

type sendRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Send posts {email, message} and returns the endpoint's status code. A
// transport-level failure (timeout, refused connection) returns status 0 and
// the error; the caller classifies both.
func (m *EmailServiceMessenger) Send(ctx context.Context, email, body string) (int, error) {
	payload, err := json.Marshal(sendRequest{Email: email, Message: body})
	if err != nil {
		return 0, fmt.Errorf("failed to encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call email service: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
