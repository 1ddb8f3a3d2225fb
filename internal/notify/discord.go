package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DiscordNotifier sends messages to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewDiscordNotifier creates a Discord notifier; an empty URL disables it.
func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled reports whether a webhook URL is configured.
func (d *DiscordNotifier) IsEnabled() bool {
	return d.webhookURL != ""
}

// Send posts a plain content message.
func (d *DiscordNotifier) Send(text string) error {
	if !d.IsEnabled() {
		return nil
	}
	payload, err := json.Marshal(map[string]string{"content": text})
	if err != nil {
		return err
	}
	resp, err := d.httpClient.Post(d.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook: status %d", resp.StatusCode)
	}
	return nil
}
