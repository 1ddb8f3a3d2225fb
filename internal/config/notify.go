package config

// NotifyConfig carries webhook targets for ticket alerts.
// An empty URL disables the corresponding channel.
type NotifyConfig struct {
	SlackWebhookURL   string
	DiscordWebhookURL string
}

func loadNotify() NotifyConfig {
	return NotifyConfig{
		SlackWebhookURL:   envOrDefault(envSlackWebhook, ""),
		DiscordWebhookURL: envOrDefault(envDiscordWebhook, ""),
	}
}
