package diff

import (
	"fmt"
	"sort"
	"strings"

	"fantasy-critic-bot/internal/core/domain"
)

// DiffMasterGames compares two master-list snapshots keyed by master
// game ID, so entries match by identity regardless of upstream array
// position. Removed entries are not reported.
func (e *Engine) DiffMasterGames(oldSet, newSet domain.MasterGameYearSet) []string {
	ids := make([]string, 0, len(newSet))
	for id := range newSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		if n1, n2 := newSet[ids[a]].GameName, newSet[ids[b]].GameName; n1 != n2 {
			return n1 < n2
		}
		return ids[a] < ids[b]
	})

	var updates []string
	for _, id := range ids {
		newGame := newSet[id]
		oldGame, known := oldSet[id]
		if !known {
			updates = append(updates, newGameLine(newGame))
			continue
		}
		updates = append(updates, e.compareMasterGame(oldGame, newGame)...)
	}
	return updates
}

func newGameLine(game domain.MasterGameYear) string {
	parts := []string{fmt.Sprintf("New game added! **%s**", game.GameName)}
	if game.CriticScore != nil {
		parts = append(parts, "critic score "+CleanNum(*game.CriticScore))
	}
	if game.ReleaseDate != nil && *game.ReleaseDate != "" {
		parts = append(parts, "official release "+CleanDate(*game.ReleaseDate))
	} else if game.EstimatedReleaseDate != "" {
		parts = append(parts, "est. release "+CleanDate(game.EstimatedReleaseDate))
	}
	return strings.Join(parts, ", ") + "."
}
