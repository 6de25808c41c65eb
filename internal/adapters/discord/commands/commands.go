package commands

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"fantasy-critic-bot/internal/adapters/discord/formatting"
	"fantasy-critic-bot/internal/core/domain"
	"fantasy-critic-bot/internal/core/ports"
	"fantasy-critic-bot/internal/core/services/worker"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
)

type BotHandler struct {
	Manager *worker.Manager
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Fantasy Critic bot is online!", "user", session.State.User.Username, "discriminator", session.State.User.Discriminator)
}

func (h *BotHandler) SetLeague(s DiscordSession, i *discordgo.InteractionCreate) {
	opts := i.ApplicationCommandData().Options
	leagueID := getStringOption(opts, "league-id")
	year := getIntOption(opts, "year")
	if leagueID == "" || year == 0 {
		respond(s, i, formatting.MsgLeagueRequired, true)
		return
	}

	w := h.Manager.Worker(i.GuildID)
	if err := w.SetLeague(context.Background(), leagueID, year); err != nil {
		slog.Error("Failed to set league", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgLeagueSet(leagueID, year), false)
}

func (h *BotHandler) FCLogin(s DiscordSession, i *discordgo.InteractionCreate) {
	opts := i.ApplicationCommandData().Options
	email := getStringOption(opts, "email")
	password := getStringOption(opts, "password")
	if email == "" || password == "" {
		respond(s, i, formatting.MsgCredsRequired, true)
		return
	}

	// credentials are in flight; everything here stays ephemeral
	respondDeferred(s, i, true)

	w := h.Manager.Worker(i.GuildID)
	if err := w.Login(context.Background(), email, password); err != nil {
		slog.Warn("Fantasy Critic login failed", "guild_id", i.GuildID, "error", err)
		followUp(s, i, formatting.MsgLoginFailed)
		return
	}

	followUp(s, i, formatting.MsgLoginSuccess)
}

func (h *BotHandler) StartTracking(s DiscordSession, i *discordgo.InteractionCreate) {
	w := h.Manager.Worker(i.GuildID)
	if err := w.StartSchedule(context.Background()); err != nil {
		respond(s, i, trackerErrorMessage(err), true)
		return
	}

	respond(s, i, formatting.MsgTrackingStarted, false)
}

func (h *BotHandler) StopTracking(s DiscordSession, i *discordgo.InteractionCreate) {
	w := h.Manager.Worker(i.GuildID)
	if err := w.StopSchedule(context.Background()); err != nil {
		respond(s, i, trackerErrorMessage(err), true)
		return
	}

	respond(s, i, formatting.MsgTrackingStopped, false)
}

func (h *BotHandler) FollowChannel(s DiscordSession, i *discordgo.InteractionCreate) {
	name := getStringOption(i.ApplicationCommandData().Options, "channel")
	if name == "" {
		respond(s, i, formatting.MsgChannelRequired, true)
		return
	}
	name = strings.TrimPrefix(name, "#")

	if _, err := ensureChannel(s, i.GuildID, name); err != nil {
		slog.Error("Failed to ensure channel", "guild_id", i.GuildID, "channel", name, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	w := h.Manager.Worker(i.GuildID)
	if err := w.AddChannel(context.Background(), name); err != nil {
		slog.Error("Failed to follow channel", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgChannelFollowed(name), false)
}

func (h *BotHandler) UnfollowChannel(s DiscordSession, i *discordgo.InteractionCreate) {
	name := getStringOption(i.ApplicationCommandData().Options, "channel")
	if name == "" {
		respond(s, i, formatting.MsgChannelRequired, true)
		return
	}
	name = strings.TrimPrefix(name, "#")

	w := h.Manager.Worker(i.GuildID)
	if err := w.RemoveChannel(context.Background(), name); err != nil {
		slog.Error("Failed to unfollow channel", "guild_id", i.GuildID, "error", err)
		respond(s, i, formatting.MsgSaveError, true)
		return
	}

	respond(s, i, formatting.MsgChannelUnfollowed(name), false)
}

func (h *BotHandler) TrackerStatus(s DiscordSession, i *discordgo.InteractionCreate) {
	w := h.Manager.Worker(i.GuildID)
	respond(s, i, formatting.MsgTrackerStatus(w.League(), w.Channels(), w.Running(), w.LoggedIn()), false)
}

func (h *BotHandler) ScoreReport(s DiscordSession, i *discordgo.InteractionCreate) {
	respondDeferred(s, i, false)

	w := h.Manager.Worker(i.GuildID)
	leagueYear, err := w.LeagueYearReport(context.Background())
	if err != nil {
		followUp(s, i, reportErrorMessage(err))
		return
	}

	// the footer is a nice-to-have; standings still render without it
	upcoming, err := w.UpcomingGames(context.Background())
	if err != nil {
		slog.Warn("Failed to fetch upcoming games", "guild_id", i.GuildID, "error", err)
	}

	followUpEmbed(s, i, formatting.ScoreReportEmbed(leagueYear, upcoming))
}

func (h *BotHandler) PublisherReport(s DiscordSession, i *discordgo.InteractionCreate) {
	name := getStringOption(i.ApplicationCommandData().Options, "publisher")
	if name == "" {
		respond(s, i, formatting.MsgPublisherRequired, true)
		return
	}

	respondDeferred(s, i, false)

	w := h.Manager.Worker(i.GuildID)
	leagueYear, err := w.LeagueYearReport(context.Background())
	if err != nil {
		followUp(s, i, reportErrorMessage(err))
		return
	}

	folded := cases.Fold()
	for _, pub := range leagueYear.Publishers {
		if folded.String(pub.PublisherName) == folded.String(name) {
			followUpEmbed(s, i, formatting.PublisherReportEmbed(pub))
			return
		}
	}

	followUp(s, i, formatting.MsgNoPublisher)
}

func (h *BotHandler) GameInfo(s DiscordSession, i *discordgo.InteractionCreate) {
	query := getStringOption(i.ApplicationCommandData().Options, "name")
	if query == "" {
		respond(s, i, formatting.MsgGameNameRequired, true)
		return
	}

	respondDeferred(s, i, false)

	w := h.Manager.Worker(i.GuildID)
	games, err := w.MasterGames(context.Background())
	if err != nil {
		followUp(s, i, reportErrorMessage(err))
		return
	}

	matches := matchGames(games, query)
	switch len(matches) {
	case 0:
		followUp(s, i, formatting.MsgNoGameMatch)
	case 1:
		followUpEmbed(s, i, formatting.GameInfoEmbed(matches[0]))
	default:
		names := make([]string, len(matches))
		for n, g := range matches {
			names[n] = g.GameName
		}
		followUp(s, i, formatting.MsgGameAmbiguous(names))
	}
}

func (h *BotHandler) RunCheck(s DiscordSession, i *discordgo.InteractionCreate) {
	respondDeferred(s, i, false)

	w := h.Manager.Worker(i.GuildID)
	sent, err := w.RunCheckOnce(context.Background())
	if err != nil {
		switch {
		case errors.Is(err, worker.ErrNoLeague), errors.Is(err, worker.ErrNotLoggedIn),
			errors.Is(err, ports.ErrAuthExpired):
			followUp(s, i, reportErrorMessage(err))
		case errors.Is(err, worker.ErrCheckInProgress):
			followUp(s, i, formatting.MsgCheckInProgress)
		default:
			slog.Error("Manual check failed", "guild_id", i.GuildID, "error", err)
			followUp(s, i, formatting.MsgCheckFailed)
		}
		return
	}

	followUp(s, i, formatting.MsgCheckComplete(sent))
}

// matchGames returns the case-folded matches for query: an exact name
// match wins outright, otherwise all substring matches sorted by name.
func matchGames(games domain.MasterGameYearSet, query string) []domain.MasterGameYear {
	folded := cases.Fold()
	needle := folded.String(query)

	var candidates []domain.MasterGameYear
	for _, g := range games {
		haystack := folded.String(g.GameName)
		if haystack == needle {
			return []domain.MasterGameYear{g}
		}
		if strings.Contains(haystack, needle) {
			candidates = append(candidates, g)
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].GameName < candidates[b].GameName
	})
	return candidates
}

func trackerErrorMessage(err error) string {
	switch {
	case errors.Is(err, worker.ErrNoLeague):
		return formatting.MsgNoLeague
	case errors.Is(err, worker.ErrNotLoggedIn):
		return formatting.MsgNotLoggedIn
	case errors.Is(err, worker.ErrAlreadyRunning):
		return formatting.MsgAlreadyTracking
	case errors.Is(err, worker.ErrNotRunning):
		return formatting.MsgNotTracking
	}
	return formatting.MsgSaveError
}

func reportErrorMessage(err error) string {
	switch {
	case errors.Is(err, worker.ErrNoLeague):
		return formatting.MsgNoLeague
	case errors.Is(err, worker.ErrNotLoggedIn):
		return formatting.MsgNotLoggedIn
	case errors.Is(err, ports.ErrAuthExpired):
		return formatting.MsgAuthExpired
	}
	return formatting.MsgReportFailed
}
