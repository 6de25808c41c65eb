package discord

import (
	"fmt"
	"log/slog"

	"fantasy-critic-bot/internal/adapters/metrics"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// GuildState is the gateway-tracked guild cache, normally
// discordgo's Session.State.
type GuildState interface {
	Guild(guildID string) (*discordgo.Guild, error)
}

// Adapter delivers update messages to named text channels, caching
// name-to-ID lookups per guild.
type Adapter struct {
	session DiscordSession
	state   GuildState
	cache   *channelCache
}

func NewAdapter(session DiscordSession, state GuildState) *Adapter {
	return &Adapter{
		session: session,
		state:   state,
		cache:   newChannelCache(),
	}
}

// GuildAvailable reports whether the gateway currently considers the
// guild reachable. A guild the state doesn't know counts as unreachable.
func (a *Adapter) GuildAvailable(guildID string) bool {
	guild, err := a.state.Guild(guildID)
	if err != nil {
		slog.Warn("Guild not found in session state", "guild_id", guildID, "error", err)
		return false
	}
	return !guild.Unavailable
}

func (a *Adapter) SendText(guildID, channelName, message string) error {
	channelID, err := a.resolveChannelID(guildID, channelName)
	if err != nil {
		slog.Error("Failed to get channel ID", "guild_id", guildID, "channel_name", channelName, "error", err)
		metrics.DiscordMessagesSent.WithLabelValues("failure").Inc()
		return err
	}

	if _, err := a.session.ChannelMessageSend(channelID, message); err != nil {
		slog.Error("Failed to send message", "channel_id", channelID, "error", err)
		// the channel may have been renamed or deleted; refetch next time
		a.cache.Invalidate(guildID, channelName)
		metrics.DiscordMessagesSent.WithLabelValues("failure").Inc()
		return err
	}

	metrics.DiscordMessagesSent.WithLabelValues("success").Inc()
	return nil
}

func (a *Adapter) resolveChannelID(guildID, channelName string) (string, error) {
	if id, ok := a.cache.Get(guildID, channelName); ok {
		return id, nil
	}

	id, err := a.fetchChannelID(guildID, channelName)
	if err != nil {
		return "", err
	}

	a.cache.Set(guildID, channelName, id)
	return id, nil
}

func (a *Adapter) fetchChannelID(guildID, channelName string) (string, error) {
	channels, err := a.session.GuildChannels(guildID)
	if err != nil {
		slog.Error("Failed to fetch guild channels", "guild_id", guildID, "error", err)
		return "", err
	}

	for _, ch := range channels {
		if ch.Name == channelName && ch.Type == discordgo.ChannelTypeGuildText {
			return ch.ID, nil
		}
	}

	return "", fmt.Errorf("channel %s not found", channelName)
}
