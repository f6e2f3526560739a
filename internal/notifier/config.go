package notifier

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/habithub/habithub-api/internal/config"
)

// FromConfig builds the notifiers that are configured. Misconfigured
// channels are logged and skipped.
func FromConfig(ctx context.Context, cfg *config.Config) Notifier {
	var out Multi

	if cfg.DiscordBotToken != "" && cfg.DiscordNotificationsChannelID != "" {
		session, err := NewDiscordSession(cfg.DiscordBotToken)
		if err != nil {
			log.Warn("Discord notifier not initialized", "err", err)
		} else {
			out = append(out, NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID))
		}
	}

	if cfg.SESFromEmail != "" {
		client, err := NewSESClient(ctx, cfg.SESRegion)
		if err != nil {
			log.Warn("Email notifier not initialized", "err", err)
		} else {
			out = append(out, NewEmailNotifier(client, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL))
		}
	}

	switch len(out) {
	case 0:
		return Nop{}
	case 1:
		return out[0]
	}
	return out
}
