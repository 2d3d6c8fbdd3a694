package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TrendDigest/internal/domain"
)

// TelegramChannel sends the analysis report to a Telegram chat via bot API.
type TelegramChannel struct {
	botToken string
	chatID   string
	client   *http.Client
	baseURL  string
}

var _ Channel = (*TelegramChannel)(nil)

// NewTelegramChannel registers bot token and chat identifier.
func NewTelegramChannel(botToken, chatID string) *TelegramChannel {
	return &TelegramChannel{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
		baseURL:  "https://api.telegram.org",
	}
}

// Name identifies the channel in dispatch results.
func (t *TelegramChannel) Name() string {
	return "telegram"
}

// Send posts a Markdown message rendering the display payload.
func (t *TelegramChannel) Send(ctx context.Context, _ domain.ReportEnvelope, reportType, _ string, payload *domain.DisplayPayload) error {
	if t.botToken == "" || t.chatID == "" || t.client == nil {
		return fmt.Errorf("telegram channel misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", renderMessage(reportType, payload))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

func renderMessage(reportType string, payload *domain.DisplayPayload) string {
	var b strings.Builder
	b.WriteString("*" + reportType + "*\n")

	if payload == nil {
		return b.String()
	}

	for _, platform := range payload.Platforms {
		for _, title := range platform.Titles {
			b.WriteString("\n")
			b.WriteString(title.Title)
			if title.TimeDisplay != "" {
				b.WriteString("\n_" + title.TimeDisplay + "_\n")
			}
		}
	}

	return b.String()
}
