package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
	"github.com/Teenu24/employee-recognition-api/pkg/metrics"
)

// Slack posts recognitions to an incoming webhook. An empty URL disables
// delivery; Deliver then succeeds without doing anything.
type Slack struct {
	url    string
	client *http.Client
}

// SlackOption applies a configuration option to the Slack notifier.
type SlackOption func(*Slack)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) SlackOption {
	return func(s *Slack) {
		if c != nil {
			s.client = c
		}
	}
}

// NewSlack creates a Slack notifier for the given webhook URL.
func NewSlack(url string, opts ...SlackOption) *Slack {
	s := &Slack{
		url:    url,
		client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// slackPayload mirrors the incoming-webhook message schema.
type slackPayload struct {
	Text string `json:"text"`
}

// Deliver posts rec to the webhook.
func (s *Slack) Deliver(ctx context.Context, rec model.Recognition) error {
	if s.url == "" {
		return nil
	}

	text := fmt.Sprintf("🎉 *New recognition* for <@%s>:\n> %s %s\n_Visibility: %s_",
		rec.RecipientID, rec.Message, rec.Emoji, rec.Visibility)
	body, err := json.Marshal(slackPayload{Text: text})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.RecordNotificationFailed()
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordNotificationFailed()
		return fmt.Errorf("%w: webhook returned status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	metrics.RecordNotificationSent()
	return nil
}
