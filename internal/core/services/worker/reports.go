package worker

import (
	"context"

	"fantasy-critic-bot/internal/core/domain"
)

// On-demand report fetches for the command surface. These ride the live
// cache tier, so a report right after a scheduled tick costs no extra
// upstream calls.

func (w *Worker) requireReady() (domain.League, error) {
	league := w.League()
	if league == nil {
		return domain.League{}, ErrNoLeague
	}
	if !w.client.Authenticated() {
		return domain.League{}, ErrNotLoggedIn
	}
	return *league, nil
}

func (w *Worker) LeagueYearReport(ctx context.Context) (*domain.LeagueYear, error) {
	league, err := w.requireReady()
	if err != nil {
		return nil, err
	}
	return w.fetchLeagueYear(ctx, league)
}

func (w *Worker) UpcomingGames(ctx context.Context) ([]domain.UpcomingGame, error) {
	league, err := w.requireReady()
	if err != nil {
		return nil, err
	}
	return w.client.GetLeagueUpcoming(ctx, league)
}

func (w *Worker) MasterGames(ctx context.Context) (domain.MasterGameYearSet, error) {
	league, err := w.requireReady()
	if err != nil {
		return nil, err
	}
	return w.fetchMasterGames(ctx, league)
}
