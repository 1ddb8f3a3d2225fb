package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nba-apex-engine/internal/domain/odds"
)

func captureServer(t *testing.T, status int) (*httptest.Server, *[]map[string]string) {
	t.Helper()
	var payloads []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read body: %v", err)
		}
		var payload map[string]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("failed to parse payload: %v", err)
		}
		payloads = append(payloads, payload)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &payloads
}

func TestSlackSendPostsTextPayload(t *testing.T) {
	srv, payloads := captureServer(t, http.StatusOK)

	if err := NewSlackNotifier(srv.URL).Send("hello slate"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*payloads) != 1 || (*payloads)[0]["text"] != "hello slate" {
		t.Fatalf("expected slack text payload, got %v", *payloads)
	}
}

func TestDiscordSendPostsContentPayload(t *testing.T) {
	srv, payloads := captureServer(t, http.StatusNoContent)

	if err := NewDiscordNotifier(srv.URL).Send("hello slate"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*payloads) != 1 || (*payloads)[0]["content"] != "hello slate" {
		t.Fatalf("expected discord content payload, got %v", *payloads)
	}
}

func TestSendRejectsErrorStatus(t *testing.T) {
	srv, _ := captureServer(t, http.StatusForbidden)

	if err := NewSlackNotifier(srv.URL).Send("msg"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
	if err := NewDiscordNotifier(srv.URL).Send("msg"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestDisabledChannelsNoOp(t *testing.T) {
	slack := NewSlackNotifier("")
	if slack.IsEnabled() {
		t.Fatal("expected empty URL to disable slack")
	}
	if err := slack.Send("msg"); err != nil {
		t.Fatalf("expected disabled send to no-op, got %v", err)
	}

	discord := NewDiscordNotifier("")
	if discord.IsEnabled() {
		t.Fatal("expected empty URL to disable discord")
	}
	if err := discord.Send("msg"); err != nil {
		t.Fatalf("expected disabled send to no-op, got %v", err)
	}
}

func TestNotifierIsEnabled(t *testing.T) {
	if NewNotifier("", "", nil).IsEnabled() {
		t.Fatal("expected disabled with no webhooks")
	}
	if !NewNotifier("http://slack.example", "", nil).IsEnabled() {
		t.Fatal("expected enabled with slack webhook")
	}
	if !NewNotifier("", "http://discord.example", nil).IsEnabled() {
		t.Fatal("expected enabled with discord webhook")
	}
}

func TestTicketAlertFansOutToAllChannels(t *testing.T) {
	slackSrv, slackPayloads := captureServer(t, http.StatusOK)
	discordSrv, discordPayloads := captureServer(t, http.StatusOK)

	n := NewNotifier(slackSrv.URL, discordSrv.URL, nil)
	n.TicketAlert("NYK @ BOS", odds.BetTicket{
		Description: "BOS -4.5",
		Price:       -110,
		Edge:        0.056,
		KellyUnits:  2.1,
		Grade:       odds.GradeA,
	})

	if len(*slackPayloads) != 1 || len(*discordPayloads) != 1 {
		t.Fatalf("expected one message per channel, got slack=%d discord=%d",
			len(*slackPayloads), len(*discordPayloads))
	}
	text := (*slackPayloads)[0]["text"]
	for _, want := range []string{"NYK @ BOS", "BOS -4.5", "-110", "5.6%", "2.10u", "A"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected alert to contain %q, got %q", want, text)
		}
	}
	if text != (*discordPayloads)[0]["content"] {
		t.Fatal("expected identical text on both channels")
	}
}

func TestSlateSummaryFormat(t *testing.T) {
	srv, payloads := captureServer(t, http.StatusOK)

	n := NewNotifier(srv.URL, "", nil)
	n.SlateSummary("2026-01-15", 8, 5)

	if len(*payloads) != 1 {
		t.Fatalf("expected one summary, got %d", len(*payloads))
	}
	text := (*payloads)[0]["text"]
	if !strings.Contains(text, "2026-01-15") || !strings.Contains(text, "8 games") || !strings.Contains(text, "5 positive-edge tickets") {
		t.Fatalf("unexpected summary text %q", text)
	}
}
