package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Message is an outbound notification such as an invitation email
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Notifier delivers messages to an external sink
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// DefaultTimeout bounds a single delivery attempt
const DefaultTimeout = 10 * time.Second

// HTTPNotifier POSTs each message as JSON to a fixed endpoint
type HTTPNotifier struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTPNotifier. A zero timeout means DefaultTimeout.
func NewHTTP(url string, timeout time.Duration) *HTTPNotifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Send delivers msg. Any non-2xx response is an error.
func (n *HTTPNotifier) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send notification: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier writes messages to the log instead of delivering them.
// Used when no notification endpoint is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLog creates a LogNotifier
func NewLog(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With(slog.String("component", "notifier"))}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	n.logger.Info("notification",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.Text))
	return nil
}
