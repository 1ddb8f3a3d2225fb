// Package notify pushes high-grade tickets to Slack and Discord webhooks.
package notify

import (
	"fmt"
	"log/slog"

	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/logging"
)

// Notifier fans a message out to every configured channel.
type Notifier struct {
	slack   *SlackNotifier
	discord *DiscordNotifier
	logger  *slog.Logger
}

// NewNotifier creates a notifier; empty webhook URLs disable a channel.
func NewNotifier(slackWebhookURL, discordWebhookURL string, logger *slog.Logger) *Notifier {
	n := &Notifier{
		slack:   NewSlackNotifier(slackWebhookURL),
		discord: NewDiscordNotifier(discordWebhookURL),
		logger:  logger,
	}
	if n.slack.IsEnabled() {
		logging.Info(logger, "slack notifications enabled")
	}
	if n.discord.IsEnabled() {
		logging.Info(logger, "discord notifications enabled")
	}
	return n
}

// IsEnabled reports whether any channel is configured.
func (n *Notifier) IsEnabled() bool {
	return n.slack.IsEnabled() || n.discord.IsEnabled()
}

// TicketAlert pushes one recommended wager to every channel.
func (n *Notifier) TicketAlert(matchup string, t odds.BetTicket) {
	text := fmt.Sprintf("%s | %s @ %+d | edge %.1f%% | %.2fu | grade %s",
		matchup, t.Description, t.Price, t.Edge*100, t.KellyUnits, t.Grade)

	if n.slack.IsEnabled() {
		if err := n.slack.Send(text); err != nil {
			logging.Error(n.logger, "slack notify failed", err)
		}
	}
	if n.discord.IsEnabled() {
		if err := n.discord.Send(text); err != nil {
			logging.Error(n.logger, "discord notify failed", err)
		}
	}
}

// SlateSummary pushes a one-line digest after a full analysis pass.
func (n *Notifier) SlateSummary(date string, games, tickets int) {
	if !n.IsEnabled() {
		return
	}
	text := fmt.Sprintf("Slate %s analyzed: %d games, %d positive-edge tickets", date, games, tickets)
	if n.slack.IsEnabled() {
		if err := n.slack.Send(text); err != nil {
			logging.Error(n.logger, "slack notify failed", err)
		}
	}
	if n.discord.IsEnabled() {
		if err := n.discord.Send(text); err != nil {
			logging.Error(n.logger, "discord notify failed", err)
		}
	}
}
