// Package notify posts alert messages to a chat webhook. Delivery is
// best effort: a failed post is reported to the caller for logging and
// never retried within the cycle.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Notifier is the notification sink consumed by the services.
type Notifier interface {
	Post(ctx context.Context, text string) error
}

// Webhook posts messages to a Slack-compatible incoming webhook.
type Webhook struct {
	url   string
	httpc *http.Client
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Webhook{
		url:   url,
		httpc: &http.Client{Timeout: timeout},
	}
}

var _ Notifier = (*Webhook)(nil)

type webhookPayload struct {
	Text      string `json:"text"`
	LinkNames int    `json:"link_names"`
}

// Post sends one message. Non-2xx responses are returned as errors.
func (w *Webhook) Post(ctx context.Context, text string) error {
	body, err := json.Marshal(webhookPayload{Text: text, LinkNames: 1})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := w.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("post webhook: unexpected status %d", res.StatusCode)
	}
	return nil
}
