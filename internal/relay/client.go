package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Message is one scheduling request from the site's agenda form.
type Message struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Date  string `json:"date" validate:"required"`
	Topic string `json:"topic" validate:"required"`
}

// Client forwards scheduling messages to the third-party email relay.
// Delivery is fire-and-forget: one POST, one status, no retry, no queueing.
type Client struct {
	endpoint   string
	accessKey  string
	httpClient *http.Client
	validate   *validator.Validate
}

// NewClient creates a relay client for the given endpoint and access key.
// A nil httpClient selects http.DefaultClient.
func NewClient(endpoint, accessKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		accessKey:  accessKey,
		httpClient: httpClient,
		validate:   validator.New(),
	}
}

type relayPayload struct {
	AccessKey string `json:"access_key"`
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Topic     string `json:"topic"`
}

// Send validates msg and posts it to the relay. A validator.ValidationErrors
// is returned for a malformed message; any transport or relay failure comes
// back as a plain error.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := c.validate.Struct(msg); err != nil {
		return err
	}

	payload := relayPayload{
		AccessKey: c.accessKey,
		MessageID: uuid.NewString(),
		Name:      msg.Name,
		Email:     msg.Email,
		Date:      msg.Date,
		Topic:     msg.Topic,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	slog.Info("Scheduling message relayed", "message_id", payload.MessageID)
	return nil
}
