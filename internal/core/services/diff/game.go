package diff

import (
	"fmt"

	"fantasy-critic-bot/internal/core/domain"
)

// Per-field interpretation rules shared by the publisher-roster and
// master-list comparisons. Every rule returns "" when the change is not
// worth a notification.

func (e *Engine) comparePublisherGame(oldG, newG domain.PublisherGame) []string {
	var updates []string

	if line := releasedEdge(newG.GameName, oldG.Released, newG.Released); line != "" {
		updates = append(updates, line)
	}
	if line := e.criticScoreChange(newG.GameName, oldG.CriticScore, newG.CriticScore); line != "" {
		updates = append(updates, line)
	}
	if line := e.fantasyPointsChange(newG.GameName, oldG.FantasyPoints, newG.FantasyPoints, newG.CounterPick); line != "" {
		updates = append(updates, line)
	}
	if line := willReleaseEdge(newG.GameName, oldG.WillRelease, newG.WillRelease); line != "" {
		updates = append(updates, line)
	}
	if line := releaseDateChange(newG.GameName,
		oldG.ReleaseDate, newG.ReleaseDate,
		oldG.EstimatedReleaseDate, newG.EstimatedReleaseDate); line != "" {
		updates = append(updates, line)
	}

	return updates
}

func (e *Engine) compareMasterGame(oldG, newG domain.MasterGameYear) []string {
	var updates []string

	if line := releasedEdge(newG.GameName, oldG.IsReleased, newG.IsReleased); line != "" {
		updates = append(updates, line)
	}
	if line := e.criticScoreChange(newG.GameName, oldG.CriticScore, newG.CriticScore); line != "" {
		updates = append(updates, line)
	}
	if line := willReleaseEdge(newG.GameName, oldG.WillRelease, newG.WillRelease); line != "" {
		updates = append(updates, line)
	}
	if line := releaseDateChange(newG.GameName,
		oldG.ReleaseDate, newG.ReleaseDate,
		oldG.EstimatedReleaseDate, newG.EstimatedReleaseDate); line != "" {
		updates = append(updates, line)
	}
	if line := categoryChange(newG.GameName,
		oldG.EligibilitySettings.EligibilityLevel.Name,
		newG.EligibilitySettings.EligibilityLevel.Name); line != "" {
		updates = append(updates, line)
	}

	return updates
}

// releasedEdge only fires on the false-to-true edge; a game un-releasing
// is upstream data noise.
func releasedEdge(name string, oldReleased, newReleased bool) string {
	if !oldReleased && newReleased {
		return fmt.Sprintf("**%s** is out!", name)
	}
	return ""
}

func (e *Engine) criticScoreChange(name string, oldScore, newScore *float64) string {
	switch {
	case newScore == nil && oldScore != nil:
		return fmt.Sprintf("**%s** critic score was removed?? (was: %s)", name, CleanNum(*oldScore))
	case newScore != nil && oldScore == nil:
		return fmt.Sprintf("**%s** now has a score: **%s**", name, CleanNum(*newScore))
	case newScore != nil && oldScore != nil && abs(*newScore-*oldScore) >= e.threshold:
		return fmt.Sprintf("**%s** critic score is now **%s**! (was: %s)", name, CleanNum(*newScore), CleanNum(*oldScore))
	}
	return ""
}

func (e *Engine) fantasyPointsChange(name string, oldPoints, newPoints *float64, counterPick bool) string {
	switch {
	case newPoints == nil && oldPoints != nil:
		return fmt.Sprintf("**%s** fantasy points removed?? (was: %s)", name, CleanNum(*oldPoints))
	case newPoints != nil && (oldPoints == nil || abs(*newPoints-*oldPoints) >= e.threshold):
		points := *newPoints
		if counterPick {
			points = -points
		}
		// no "(was:)" here; the score change is reported via criticScore
		return fmt.Sprintf("**%s** is now worth **%s points**!", name, CleanNum(points))
	}
	return ""
}

func willReleaseEdge(name string, oldWill, newWill bool) string {
	if oldWill == newWill {
		return ""
	}
	if newWill {
		return fmt.Sprintf("**%s** now officially **will release** during this league year.", name)
	}
	return fmt.Sprintf("**%s** now officially **will not release** during this league year.", name)
}

// releaseDateChange funnels both date fields into one rule so a single
// tick never reports the same move twice. Dates are compared at
// calendar-day granularity.
func releaseDateChange(name string, oldOfficial, newOfficial *string, oldEstimate, newEstimate string) string {
	oldDate := CleanDate(deref(oldOfficial))
	newDate := CleanDate(deref(newOfficial))
	oldEst := CleanDate(oldEstimate)
	newEst := CleanDate(newEstimate)

	switch {
	case newDate != "" && oldDate == "":
		return fmt.Sprintf("**%s** has an official release date: **%s**", name, newDate)
	case newDate == "" && oldDate != "":
		extra := ""
		if newEst != oldEst {
			extra = fmt.Sprintf(" The new estimate is %s (was: %s)", newEst, oldEst)
		}
		return fmt.Sprintf("**%s** had its official release date **removed**.%s", name, extra)
	case newDate != oldDate:
		return fmt.Sprintf("**%s** has a new official release date: **%s** (was: %s)", name, newDate, oldDate)
	case newEst != oldEst:
		return fmt.Sprintf("**%s** has a new estimated release: **%s** (was: %s)", name, newEst, oldEst)
	}
	return ""
}

func categoryChange(name, oldCategory, newCategory string) string {
	if oldCategory == newCategory {
		return ""
	}
	line := fmt.Sprintf("**%s** is now categorized as **%q**.", name, newCategory)
	if oldCategory == "" {
		return "NEW: " + line
	}
	return fmt.Sprintf("%s (was: %s)", line, oldCategory)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
