package diff

import (
	"fmt"
	"log/slog"

	"fantasy-critic-bot/internal/core/domain"
	"fantasy-critic-bot/internal/core/rank"
)

// DiffLeagueYear compares two league snapshots publisher by publisher.
// Publisher lists are positionally aligned upstream but not order-stable
// across snapshots, so positional comparison only happens when both
// snapshots carry the same publisher count; otherwise field diffs are
// skipped for this tick and only brand-new publishers are reported.
func (e *Engine) DiffLeagueYear(oldYear, newYear *domain.LeagueYear) []string {
	if len(oldYear.Publishers) != len(newYear.Publishers) {
		slog.Warn("Publisher count changed between snapshots, skipping positional diff",
			"old_count", len(oldYear.Publishers), "new_count", len(newYear.Publishers))
		return newPublisherLines(oldYear.Publishers, newYear.Publishers)
	}

	oldRanks := rankPublishers(oldYear.Publishers)
	newRanks := rankPublishers(newYear.Publishers)

	var updates []string
	for i := range newYear.Publishers {
		oldPub := oldYear.Publishers[i]
		newPub := newYear.Publishers[i]

		if line := e.totalPointsChange(oldPub, newPub, oldRanks, newRanks); line != "" {
			updates = append(updates, line)
		}

		if len(oldPub.Games) != len(newPub.Games) {
			// roster membership changes surface through league actions
			continue
		}
		for g := range newPub.Games {
			updates = append(updates, e.comparePublisherGame(oldPub.Games[g], newPub.Games[g])...)
		}
	}
	return updates
}

type pubStanding struct {
	rank int
	tied bool
}

func rankPublishers(pubs []domain.Publisher) map[string]pubStanding {
	ranked := rank.By(pubs, func(p domain.Publisher) float64 { return p.TotalFantasyPoints })

	standings := make(map[string]pubStanding, len(ranked))
	for _, r := range ranked {
		standings[r.Item.PublisherName] = pubStanding{
			rank: r.Rank,
			tied: rank.Tied(ranked, r.Rank),
		}
	}
	return standings
}

// totalPointsChange reports a publisher's score move when the delta
// clears the noise floor or the move changed their rank or tie status.
func (e *Engine) totalPointsChange(oldPub, newPub domain.Publisher, oldRanks, newRanks map[string]pubStanding) string {
	if oldPub.TotalFantasyPoints == newPub.TotalFantasyPoints {
		return ""
	}

	standing := newRanks[newPub.PublisherName]
	oldStanding, hadStanding := oldRanks[newPub.PublisherName]
	rankMoved := !hadStanding || standing != oldStanding

	if abs(newPub.TotalFantasyPoints-oldPub.TotalFantasyPoints) < e.threshold && !rankMoved {
		return ""
	}

	rankStr := Ordinal(standing.rank)
	if standing.tied {
		rankStr = "tied for " + rankStr
	}
	return fmt.Sprintf("**%s** (Player: %s) has a new score: **%s**! (was: %s). They are currently **%s**.",
		newPub.PublisherName, newPub.PlayerName,
		CleanNum(newPub.TotalFantasyPoints), CleanNum(oldPub.TotalFantasyPoints), rankStr)
}

func newPublisherLines(oldPubs, newPubs []domain.Publisher) []string {
	known := make(map[string]bool, len(oldPubs))
	for _, p := range oldPubs {
		known[p.PublisherName] = true
	}

	var updates []string
	for _, p := range newPubs {
		if !known[p.PublisherName] {
			updates = append(updates, fmt.Sprintf("New publisher joined: **%s** (Player: %s).", p.PublisherName, p.PlayerName))
		}
	}
	return updates
}
