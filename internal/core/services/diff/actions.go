package diff

import (
	"fmt"

	"fantasy-critic-bot/internal/core/domain"
)

// DiffLeagueActions relies on the action log being newest-first and
// prepend-only: the number of genuinely new entries is the growth of the
// list, taken from the front. Edits to already-seen actions are never
// re-reported.
func (e *Engine) DiffLeagueActions(oldActions, newActions []domain.LeagueAction) []string {
	fresh := len(newActions) - len(oldActions)
	if fresh <= 0 {
		return nil
	}
	if fresh > len(newActions) {
		fresh = len(newActions)
	}

	updates := make([]string, 0, fresh)
	for _, action := range newActions[:fresh] {
		updates = append(updates, fmt.Sprintf("**%s**: %s", action.PublisherName, action.Description))
	}
	return updates
}
