package diff

import (
	"strings"
	"testing"

	"fantasy-critic-bot/internal/core/domain"
)

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }

func TestReleasedEdge(t *testing.T) {
	t.Run("false to true emits release line", func(t *testing.T) {
		got := releasedEdge("Elden Ring", false, true)
		if got != "**Elden Ring** is out!" {
			t.Errorf("unexpected line: %q", got)
		}
	})

	t.Run("true to false is silent", func(t *testing.T) {
		if got := releasedEdge("Elden Ring", true, false); got != "" {
			t.Errorf("expected silence, got %q", got)
		}
	})

	t.Run("no change is silent", func(t *testing.T) {
		if got := releasedEdge("Elden Ring", true, true); got != "" {
			t.Errorf("expected silence, got %q", got)
		}
	})
}

func TestCriticScoreChange(t *testing.T) {
	e := New(DefaultThreshold)

	t.Run("delta below threshold is silent", func(t *testing.T) {
		if got := e.criticScoreChange("Game", fptr(70), fptr(71)); got != "" {
			t.Errorf("expected silence for sub-threshold delta, got %q", got)
		}
	})

	t.Run("delta at threshold reports with old value", func(t *testing.T) {
		got := e.criticScoreChange("Game", fptr(70), fptr(75))
		want := "**Game** critic score is now **75**! (was: 70)"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("newly present score always reports", func(t *testing.T) {
		got := e.criticScoreChange("Game", nil, fptr(80.5))
		want := "**Game** now has a score: **80.5**"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("removed score reports with old value", func(t *testing.T) {
		got := e.criticScoreChange("Game", fptr(66), nil)
		if !strings.Contains(got, "removed") || !strings.Contains(got, "(was: 66)") {
			t.Errorf("unexpected removal line: %q", got)
		}
	})

	t.Run("both absent is silent", func(t *testing.T) {
		if got := e.criticScoreChange("Game", nil, nil); got != "" {
			t.Errorf("expected silence, got %q", got)
		}
	})
}

func TestFantasyPointsChange(t *testing.T) {
	e := New(DefaultThreshold)

	t.Run("newly present reports", func(t *testing.T) {
		got := e.fantasyPointsChange("Game", nil, fptr(12.5), false)
		want := "**Game** is now worth **12.5 points**!"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("sub-threshold move is silent", func(t *testing.T) {
		if got := e.fantasyPointsChange("Game", fptr(12), fptr(13), false); got != "" {
			t.Errorf("expected silence, got %q", got)
		}
	})

	t.Run("counter pick negates displayed worth", func(t *testing.T) {
		got := e.fantasyPointsChange("Game", fptr(2), fptr(8), true)
		want := "**Game** is now worth **-8 points**!"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("removed points report old value", func(t *testing.T) {
		got := e.fantasyPointsChange("Game", fptr(9), nil, false)
		if !strings.Contains(got, "removed") || !strings.Contains(got, "(was: 9)") {
			t.Errorf("unexpected removal line: %q", got)
		}
	})
}

func TestWillReleaseEdge(t *testing.T) {
	t.Run("now will release", func(t *testing.T) {
		got := willReleaseEdge("Game", false, true)
		if !strings.Contains(got, "**will release**") {
			t.Errorf("unexpected line: %q", got)
		}
	})

	t.Run("reverting also reports", func(t *testing.T) {
		got := willReleaseEdge("Game", true, false)
		if !strings.Contains(got, "**will not release**") {
			t.Errorf("unexpected line: %q", got)
		}
	})

	t.Run("no change is silent", func(t *testing.T) {
		if got := willReleaseEdge("Game", true, true); got != "" {
			t.Errorf("expected silence, got %q", got)
		}
	})
}

func TestReleaseDateChange(t *testing.T) {
	t.Run("official date newly set emits exactly that", func(t *testing.T) {
		got := releaseDateChange("Game", nil, sptr("2024-06-01"), "2024-06-01", "2024-06-01")
		want := "**Game** has an official release date: **2024-06-01**"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("official date removed without estimate change", func(t *testing.T) {
		got := releaseDateChange("Game", sptr("2024-06-01"), nil, "2024-06-01", "2024-06-01")
		want := "**Game** had its official release date **removed**."
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("official date removed with estimate delta", func(t *testing.T) {
		got := releaseDateChange("Game", sptr("2024-06-01"), nil, "2024-06-01", "2024-09-01")
		if !strings.Contains(got, "removed") || !strings.Contains(got, "The new estimate is 2024-09-01 (was: 2024-06-01)") {
			t.Errorf("unexpected line: %q", got)
		}
	})

	t.Run("official date changed", func(t *testing.T) {
		got := releaseDateChange("Game", sptr("2024-06-01"), sptr("2024-07-01"), "", "")
		want := "**Game** has a new official release date: **2024-07-01** (was: 2024-06-01)"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("estimate changed with stable official date", func(t *testing.T) {
		got := releaseDateChange("Game", sptr("2024-06-01"), sptr("2024-06-01"), "2024-05-01", "2024-06-01")
		want := "**Game** has a new estimated release: **2024-06-01** (was: 2024-05-01)"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("same-day timestamp jitter is silent", func(t *testing.T) {
		got := releaseDateChange("Game",
			sptr("2024-06-01T00:00:00"), sptr("2024-06-01T12:00:00"),
			"2024-06-01T00:00:00", "2024-06-01T08:30:00")
		if got != "" {
			t.Errorf("expected silence for same-day jitter, got %q", got)
		}
	})

	t.Run("nothing changed is silent", func(t *testing.T) {
		if got := releaseDateChange("Game", nil, nil, "Early 2025", "Early 2025"); got != "" {
			t.Errorf("expected silence, got %q", got)
		}
	})
}

func TestCategoryChange(t *testing.T) {
	t.Run("recategorized carries old value", func(t *testing.T) {
		got := categoryChange("Game", "Remake", "New Game")
		if !strings.Contains(got, `**"New Game"**`) || !strings.Contains(got, "(was: Remake)") {
			t.Errorf("unexpected line: %q", got)
		}
	})

	t.Run("first assignment marked new", func(t *testing.T) {
		got := categoryChange("Game", "", "New Game")
		if !strings.HasPrefix(got, "NEW: ") {
			t.Errorf("expected NEW prefix, got %q", got)
		}
	})

	t.Run("unchanged is silent", func(t *testing.T) {
		if got := categoryChange("Game", "Remake", "Remake"); got != "" {
			t.Errorf("expected silence, got %q", got)
		}
	})
}

func TestComparePublisherGame_SingleEventForSpecScenario(t *testing.T) {
	// old {releaseDate: null, estimate: 2024-06-01} -> new {both 2024-06-01}
	// must yield exactly one line, the official-date one.
	e := New(DefaultThreshold)
	oldG := domain.PublisherGame{GameName: "Game", WillRelease: true, EstimatedReleaseDate: "2024-06-01"}
	newG := domain.PublisherGame{GameName: "Game", WillRelease: true, ReleaseDate: sptr("2024-06-01"), EstimatedReleaseDate: "2024-06-01"}

	updates := e.comparePublisherGame(oldG, newG)

	if len(updates) != 1 {
		t.Fatalf("expected exactly one update, got %d: %v", len(updates), updates)
	}
	if updates[0] != "**Game** has an official release date: **2024-06-01**" {
		t.Errorf("unexpected update: %q", updates[0])
	}
}
