package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"TrendDigest/internal/config"
	"TrendDigest/internal/domain"
)

func samplePayload() *domain.DisplayPayload {
	return &domain.DisplayPayload{
		Platforms: []domain.PlatformSection{
			{
				PlatformID:   "custom_analysis",
				PlatformName: "Custom Analysis",
				Titles: []domain.DisplayTitle{
					{Title: "today's analysis text", TimeDisplay: "2026-08-30 09:00", Rank: 1},
				},
			},
		},
		RSSFeeds: []domain.RSSFeedSection{},
	}
}

type stubChannel struct {
	name  string
	err   error
	calls int
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Send(context.Context, domain.ReportEnvelope, string, string, *domain.DisplayPayload) error {
	s.calls++
	return s.err
}

func TestDispatchAllCollectsPerChannelResults(t *testing.T) {
	t.Parallel()

	ok := &stubChannel{name: "ok"}
	failing := &stubChannel{name: "failing", err: fmt.Errorf("unreachable")}
	d := NewDispatcher(nil, ok, failing)

	results := d.DispatchAll(context.Background(), domain.EmptyReportEnvelope(), "daily trend analysis", "daily", samplePayload())

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["ok"] != nil {
		t.Fatalf("unexpected error for ok channel: %v", results["ok"])
	}
	if results["failing"] == nil {
		t.Fatal("expected error for failing channel")
	}
	if ok.calls != 1 || failing.calls != 1 {
		t.Fatalf("every channel must be attempted: ok=%d failing=%d", ok.calls, failing.calls)
	}
}

func TestDispatchAllNoChannels(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	results := d.DispatchAll(context.Background(), domain.EmptyReportEnvelope(), "t", "daily", samplePayload())

	if len(results) != 0 {
		t.Fatalf("expected empty results, got %v", results)
	}
}

func TestChannelsFromConfig(t *testing.T) {
	t.Parallel()

	channels := ChannelsFromConfig(config.NotificationConfig{
		Telegram: config.TelegramConfig{BotToken: "tok", ChatID: "1"},
		Webhooks: []config.WebhookConfig{
			{Name: "ops", URL: "https://hooks.example.org"},
			{Name: "skipped"},
		},
	})

	if len(channels) != 2 {
		t.Fatalf("expected telegram + one webhook, got %d channels", len(channels))
	}

	partial := ChannelsFromConfig(config.NotificationConfig{
		Telegram: config.TelegramConfig{BotToken: "tok"},
	})
	if len(partial) != 0 {
		t.Fatalf("telegram without chat id must be skipped, got %d channels", len(partial))
	}
}

func TestTelegramChannelSend(t *testing.T) {
	t.Parallel()

	var gotText, gotChatID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotChatID = r.PostFormValue("chat_id")
		gotText = r.PostFormValue("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ch := NewTelegramChannel("bot-token", "chat-7")
	ch.baseURL = server.URL
	ch.client = server.Client()

	err := ch.Send(context.Background(), domain.EmptyReportEnvelope(), "daily trend analysis", "daily", samplePayload())
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if gotChatID != "chat-7" {
		t.Fatalf("unexpected chat id: %s", gotChatID)
	}
	if !strings.Contains(gotText, "daily trend analysis") || !strings.Contains(gotText, "today's analysis text") {
		t.Fatalf("unexpected message text: %q", gotText)
	}
}

func TestTelegramChannelServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	ch := NewTelegramChannel("bot-token", "chat-7")
	ch.baseURL = server.URL
	ch.client = server.Client()

	if err := ch.Send(context.Background(), domain.EmptyReportEnvelope(), "t", "daily", samplePayload()); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestTelegramChannelMisconfigured(t *testing.T) {
	t.Parallel()

	ch := NewTelegramChannel("", "")
	if err := ch.Send(context.Background(), domain.EmptyReportEnvelope(), "t", "daily", samplePayload()); err == nil {
		t.Fatal("expected misconfiguration error")
	}
}

func TestWebhookChannelSend(t *testing.T) {
	t.Parallel()

	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ch := NewWebhookChannel("ops", server.URL)
	err := ch.Send(context.Background(), domain.EmptyReportEnvelope(), "daily trend analysis", "daily", samplePayload())
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if body["report_type"] != "daily trend analysis" || body["mode"] != "daily" {
		t.Fatalf("unexpected envelope fields: %v", body)
	}

	standalone, ok := body["standalone_data"].(map[string]any)
	if !ok {
		t.Fatalf("missing standalone_data: %v", body)
	}
	platforms, ok := standalone["platforms"].([]any)
	if !ok || len(platforms) != 1 {
		t.Fatalf("unexpected platforms: %v", standalone)
	}
}

func TestWebhookChannelErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer server.Close()

	ch := NewWebhookChannel("ops", server.URL)
	err := ch.Send(context.Background(), domain.EmptyReportEnvelope(), "t", "daily", samplePayload())
	if err == nil {
		t.Fatal("expected error on 400 response")
	}
	if !strings.Contains(err.Error(), "bad payload") {
		t.Fatalf("error should carry response detail: %v", err)
	}
}
