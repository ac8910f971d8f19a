package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// WebhookSink posts every record as JSON to an external collector.
type WebhookSink struct {
	url    string
	token  string
	client *http.Client
}

func NewWebhookSink(url, token string) *WebhookSink {
	return &WebhookSink{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookRecord struct {
	Step      string    `json:"step"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func (s *WebhookSink) Record(step string, payload any, at time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.client.Timeout)
	defer cancel()

	return s.send(ctx, webhookRecord{
		Step:      step,
		Timestamp: at.UTC(),
		Payload:   payload,
	})
}

func (s *WebhookSink) send(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.url,
		bytes.NewReader(b),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.New(
			"audit webhook error: " +
				resp.Status +
				" body=" + string(respBody),
		)
	}

	return nil
}
