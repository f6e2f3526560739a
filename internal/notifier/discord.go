package notifier

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/habithub/habithub-api/internal/models"
)

// MessageSender is the part of *discordgo.Session the notifier uses.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   MessageSender
	channelID string
}

func NewDiscordNotifier(session MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordSession creates a bot session. The notifier only posts over
// REST, so the gateway is never opened.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	return discordgo.New("Bot " + token)
}

func (n *DiscordNotifier) NotifyAchievement(ctx context.Context, user models.User, achievement models.Achievement) error {
	message := fmt.Sprintf("🏆 **Achievement Unlocked**\n**User:** %s\n**Achievement:** %s (%s)\n%s\n**Reward:** +%d XP",
		displayName(user),
		achievement.Name,
		achievement.Rarity,
		achievement.Description,
		achievement.XPReward,
	)
	return n.send(ctx, message)
}

func (n *DiscordNotifier) NotifyLevelUp(ctx context.Context, user models.User, level int) error {
	message := fmt.Sprintf("⬆️ **Level Up**\n**User:** %s reached level %d", displayName(user), level)
	return n.send(ctx, message)
}

func (n *DiscordNotifier) send(ctx context.Context, message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		log.Error("Failed to send discord message", "channel", n.channelID, "err", err)
		return err
	}
	return nil
}

func displayName(user models.User) string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return user.Email
}
