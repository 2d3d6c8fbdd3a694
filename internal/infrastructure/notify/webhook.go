package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"TrendDigest/internal/domain"
)

// WebhookChannel posts the full report as JSON to a configured endpoint.
type WebhookChannel struct {
	name   string
	url    string
	client *http.Client
}

var _ Channel = (*WebhookChannel)(nil)

// NewWebhookChannel wires one endpoint; name defaults to "webhook".
func NewWebhookChannel(name, url string) *WebhookChannel {
	if name == "" {
		name = "webhook"
	}
	return &WebhookChannel{
		name:   name,
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the channel in dispatch results.
func (w *WebhookChannel) Name() string {
	return w.name
}

// Send posts the envelope and standalone payload as a single JSON document.
func (w *WebhookChannel) Send(ctx context.Context, env domain.ReportEnvelope, reportType, mode string, payload *domain.DisplayPayload) error {
	if w.url == "" {
		return fmt.Errorf("webhook channel %s misconfigured", w.name)
	}

	body, err := json.Marshal(map[string]any{
		"report_type":     reportType,
		"mode":            mode,
		"report":          env,
		"standalone_data": payload,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook %s error %s: %s", w.name, resp.Status, strings.TrimSpace(string(detail)))
	}

	return nil
}
