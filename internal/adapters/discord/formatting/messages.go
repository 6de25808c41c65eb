// Package formatting holds every user-facing reply string, so wording
// lives in one place and handlers stay thin.
package formatting

import (
	"fmt"
	"strings"

	"fantasy-critic-bot/internal/core/domain"
	"fantasy-critic-bot/internal/core/rank"
	"fantasy-critic-bot/internal/core/services/diff"

	"github.com/bwmarrin/discordgo"
)

const (
	MsgLeagueRequired    = "Please provide both a league ID and a year."
	MsgCredsRequired     = "Please provide both an email address and a password."
	MsgChannelRequired   = "Please provide a channel name."
	MsgPublisherRequired = "Please provide a publisher name."
	MsgGameNameRequired  = "Please provide a game name."
	MsgNoLeague          = "No league is selected yet. An admin can set one with `/set-league`."
	MsgNotLoggedIn       = "I'm not logged in to Fantasy Critic yet. An admin can log in with `/fc-login`."
	MsgAuthExpired       = "The Fantasy Critic session expired. An admin must log in again with `/fc-login`."
	MsgLoginFailed       = "Login failed. Check the email address and password."
	MsgLoginSuccess      = "Logged in to Fantasy Critic! Credentials are stored for scheduled checks."
	MsgSaveError         = "Something went wrong saving the settings. Please try again."
	MsgTrackingStarted   = "Tracking started! League news will be posted to the followed channels."
	MsgTrackingStopped   = "Tracking stopped. Settings and login are kept."
	MsgAlreadyTracking   = "Tracking is already running."
	MsgNotTracking       = "Tracking is not running."
	MsgCheckFailed       = "The check failed. See the logs for details."
	MsgReportFailed      = "Could not fetch the league right now. Please try again."
	MsgCheckInProgress   = "A check is already in progress. Try again in a moment."
	MsgNoPublisher       = "No publisher by that name in this league."
	MsgNoGameMatch       = "No game matching that name in this year's master list."
)

func MsgGameAmbiguous(names []string) string {
	if len(names) > 5 {
		names = names[:5]
	}
	return fmt.Sprintf("Several games match: **%s**. Try a more specific name.", strings.Join(names, "**, **"))
}

func MsgLeagueSet(leagueID string, year int) string {
	return fmt.Sprintf("Now tracking league `%s` for the %d season.", leagueID, year)
}

func MsgChannelFollowed(name string) string {
	return fmt.Sprintf("League updates will be posted to **#%s**.", name)
}

func MsgChannelUnfollowed(name string) string {
	return fmt.Sprintf("Stopped posting updates to **#%s**.", name)
}

func MsgCheckComplete(sent int) string {
	if sent == 0 {
		return "Check complete. Nothing new."
	}
	return fmt.Sprintf("Check complete. %d update(s) posted.", sent)
}

func MsgTrackerStatus(league *domain.League, channels []string, running, loggedIn bool) string {
	var b strings.Builder
	b.WriteString("**Tracker status**\n")

	if league != nil {
		fmt.Fprintf(&b, "League: `%s` (%d)\n", league.ID, league.Year)
	} else {
		b.WriteString("League: not set\n")
	}

	if loggedIn {
		b.WriteString("Fantasy Critic login: yes\n")
	} else {
		b.WriteString("Fantasy Critic login: no\n")
	}

	if len(channels) > 0 {
		fmt.Fprintf(&b, "Followed channels: #%s\n", strings.Join(channels, ", #"))
	} else {
		b.WriteString("Followed channels: none\n")
	}

	if running {
		b.WriteString("Schedule: running")
	} else {
		b.WriteString("Schedule: stopped")
	}
	return b.String()
}

// ScoreReportEmbed renders the current standings: players ranked
// tie-aware by total points, with a crown for last year's winner.
func ScoreReportEmbed(leagueYear *domain.LeagueYear, upcoming []domain.UpcomingGame) *discordgo.MessageEmbed {
	ranked := rank.By(leagueYear.Players, func(p domain.Player) float64 { return p.TotalFantasyPoints })

	var lines []string
	if status := leagueYear.PlayStatus.PlayStatus; status != "" && status != "DraftFinal" {
		lines = append(lines, diff.PlayStatusLabel(status), "")
	}
	for _, r := range ranked {
		place := diff.Ordinal(r.Rank)
		if rank.Tied(ranked, r.Rank) {
			place = "T-" + place
		}
		crown := ""
		if r.Item.PreviousYearWinner {
			crown = " 👑"
		}
		publisherName := "no publisher yet"
		if r.Item.Publisher != nil {
			publisherName = r.Item.Publisher.PublisherName
		}
		lines = append(lines, fmt.Sprintf("**%s** %s%s (%s): **%s points**",
			place, r.Item.User.DisplayName, crown, publisherName, diff.CleanNum(r.Item.TotalFantasyPoints)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Current standings",
		Description: strings.Join(lines, "\n"),
		Color:       0x00b0f0,
	}

	if len(upcoming) > 0 {
		var next []string
		for i, g := range upcoming {
			if i >= 3 {
				break
			}
			next = append(next, fmt.Sprintf("%s (%s)", g.GameName, g.EstimatedReleaseDate))
		}
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Upcoming: " + strings.Join(next, ", "),
		}
	}
	return embed
}

// PublisherReportEmbed renders one publisher's roster.
func PublisherReportEmbed(pub domain.Publisher) *discordgo.MessageEmbed {
	var lines []string
	for _, g := range pub.Games {
		lines = append(lines, publisherGameLine(g))
	}
	if len(lines) == 0 {
		lines = append(lines, "No games drafted yet.")
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s (%s)", pub.PublisherName, pub.PlayerName),
		Description: strings.Join(lines, "\n"),
		Color:       0x00b0f0,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Total: %s points", diff.CleanNum(pub.TotalFantasyPoints)),
		},
	}
}

func publisherGameLine(g domain.PublisherGame) string {
	var tags []string
	if g.CounterPick {
		tags = append(tags, "counter pick")
	}
	if g.Released {
		tags = append(tags, "released")
	} else if !g.WillRelease {
		tags = append(tags, "will not release")
	}

	line := "**" + g.GameName + "**"
	if len(tags) > 0 {
		line += " (" + strings.Join(tags, ", ") + ")"
	}
	if g.CriticScore != nil {
		line += fmt.Sprintf(": critic %s", diff.CleanNum(*g.CriticScore))
	}
	if g.FantasyPoints != nil {
		line += fmt.Sprintf(", %s points", diff.CleanNum(*g.FantasyPoints))
	}
	return line
}

// GameInfoEmbed renders one master list entry.
func GameInfoEmbed(g domain.MasterGameYear) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{}

	if g.ReleaseDate != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Release date", Value: diff.CleanDate(*g.ReleaseDate), Inline: true,
		})
	} else if g.EstimatedReleaseDate != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Estimated release", Value: g.EstimatedReleaseDate, Inline: true,
		})
	}

	if g.CriticScore != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Critic score", Value: diff.CleanNum(*g.CriticScore), Inline: true,
		})
	}

	released := "no"
	if g.IsReleased {
		released = "yes"
	}
	willRelease := "no"
	if g.WillRelease {
		willRelease = "yes"
	}
	fields = append(fields,
		&discordgo.MessageEmbedField{Name: "Released", Value: released, Inline: true},
		&discordgo.MessageEmbedField{Name: "Will release this year", Value: willRelease, Inline: true},
	)

	if cat := g.EligibilitySettings.EligibilityLevel.Name; cat != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Category", Value: cat, Inline: true})
	}

	return &discordgo.MessageEmbed{
		Title:  g.GameName,
		Color:  0x00b0f0,
		Fields: fields,
	}
}
