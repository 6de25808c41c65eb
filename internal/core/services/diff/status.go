package diff

import (
	"fmt"

	"fantasy-critic-bot/internal/core/domain"
)

var playStatusLabels = map[string]string{
	"Drafting":        "Draft in Progress",
	"DraftPaused":     "Draft in Progress (paused)",
	"DraftFinal":      "League in Play (Draft Complete)",
	"NotStartedDraft": "League is in pre-draft signup mode",
}

// PlayStatusLabel maps an upstream play status to its display sentence.
// Unrecognized values degrade to a verbatim label instead of failing.
func PlayStatusLabel(status string) string {
	if label, ok := playStatusLabels[status]; ok {
		return label
	}
	return fmt.Sprintf("Unrecognized status: %s", status)
}

// DiffStatusAndMessages is the secondary pass over a league snapshot:
// play-status transitions and new manager messages.
func (e *Engine) DiffStatusAndMessages(oldYear, newYear *domain.LeagueYear) []string {
	var updates []string

	oldStatus := oldYear.PlayStatus.PlayStatus
	newStatus := newYear.PlayStatus.PlayStatus
	if oldStatus != newStatus {
		if _, known := playStatusLabels[newStatus]; known {
			updates = append(updates, fmt.Sprintf("The league status is now: **%s**.", PlayStatusLabel(newStatus)))
		} else {
			updates = append(updates, fmt.Sprintf("The league entered unrecognized status '%s'.", newStatus))
		}
	}

	// manager messages are newest-first and prepend-only, same as actions
	fresh := len(newYear.ManagerMessages) - len(oldYear.ManagerMessages)
	if fresh > len(newYear.ManagerMessages) {
		fresh = len(newYear.ManagerMessages)
	}
	for i := 0; i < fresh; i++ {
		updates = append(updates, fmt.Sprintf("**League manager**: %s", newYear.ManagerMessages[i].MessageText))
	}

	return updates
}
