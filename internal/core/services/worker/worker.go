package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fantasy-critic-bot/internal/adapters/metrics"
	"fantasy-critic-bot/internal/config"
	"fantasy-critic-bot/internal/core/domain"
	"fantasy-critic-bot/internal/core/ports"
	"fantasy-critic-bot/internal/core/services/diff"
	"fantasy-critic-bot/internal/core/services/snapshot"
)

var (
	ErrNoLeague        = errors.New("no league selected for this server")
	ErrNotLoggedIn     = errors.New("not logged in to Fantasy Critic")
	ErrNotRunning      = errors.New("tracking is not running")
	ErrAlreadyRunning  = errors.New("tracking is already running")
	ErrCheckInProgress = errors.New("a check is already in progress")
)

type Dependencies struct {
	Config    *config.Config
	Client    ports.LeagueClient
	Notifier  ports.Notifier
	Store     ports.StateStore
	Snapshots *snapshot.Cache
	Dedup     ports.Cache
	Engine    *diff.Engine
}

// Worker tracks one Discord guild's league: it owns the recurring check
// jobs, the in-memory baselines and the dedup window for that guild.
type Worker struct {
	guildID   string
	cfg       *config.Config
	client    ports.LeagueClient
	notifier  ports.Notifier
	store     ports.StateStore
	snapshots *snapshot.Cache
	dedup     ports.Cache
	engine    *diff.Engine

	// checkMu gates ticks: held for the whole of one check, tried and
	// skipped (never queued) by overlapping triggers.
	checkMu sync.Mutex

	mu       sync.Mutex
	league   *domain.League
	channels []string
	running  bool
	stopJobs chan struct{}

	// baselines belong to the tick: read and written only with checkMu
	// held, so a league change cannot clear them under a running check.
	lastLeagueYear *domain.LeagueYear
	lastActions    []domain.LeagueAction
	lastMaster     domain.MasterGameYearSet
}

func New(guildID string, deps Dependencies) *Worker {
	w := &Worker{
		guildID:   guildID,
		cfg:       deps.Config,
		client:    deps.Client,
		notifier:  deps.Notifier,
		store:     deps.Store,
		snapshots: deps.Snapshots,
		dedup:     deps.Dedup,
		engine:    deps.Engine,
	}

	w.client.OnAuthRefresh(func(auth *domain.AuthCredentials) {
		slog.Info("Auth refreshed, persisting state", "guild_id", w.guildID)
		if err := w.saveState(context.Background()); err != nil {
			slog.Error("Failed to persist refreshed auth", "guild_id", w.guildID, "error", err)
		}
	})

	return w
}

// LoadState resumes a previously registered guild: league selection,
// followed channels, stored credentials and, if it was running before
// the restart, the schedule itself.
func (w *Worker) LoadState(ctx context.Context) error {
	state, err := w.store.Get(ctx, w.guildID)
	if err != nil {
		return fmt.Errorf("load worker state: %w", err)
	}
	if state == nil {
		return nil
	}

	w.mu.Lock()
	w.league = state.League
	w.channels = append([]string(nil), state.ChannelNames...)
	w.mu.Unlock()

	if state.Auth != nil {
		w.client.SetAuth(state.Auth)
	}

	if state.Running {
		if err := w.StartSchedule(ctx); err != nil {
			slog.Warn("Could not resume schedule", "guild_id", w.guildID, "error", err)
		}
	}
	return nil
}

func (w *Worker) saveState(ctx context.Context) error {
	w.mu.Lock()
	state := &domain.WorkerState{
		GuildID:      w.guildID,
		Auth:         w.client.Auth(),
		League:       w.league,
		ChannelNames: append([]string(nil), w.channels...),
		Running:      w.running,
	}
	w.mu.Unlock()

	return w.store.Save(ctx, state)
}

// SetLeague replaces the tracked league wholesale and clears the
// in-memory baselines; the old league's cache entries simply age out.
// It waits for an in-flight tick to finish, so that tick completes
// against the old league and the next one starts fresh.
func (w *Worker) SetLeague(ctx context.Context, leagueID string, year int) error {
	w.checkMu.Lock()
	w.mu.Lock()
	w.league = &domain.League{ID: leagueID, Year: year}
	w.lastLeagueYear = nil
	w.lastActions = nil
	w.lastMaster = nil
	w.mu.Unlock()
	w.checkMu.Unlock()

	return w.saveState(ctx)
}

func (w *Worker) League() *domain.League {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.league
}

func (w *Worker) Login(ctx context.Context, emailAddress, password string) error {
	// state save is handled by the auth-refresh callback
	return w.client.Login(ctx, emailAddress, password)
}

func (w *Worker) Channels() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.channels...)
}

func (w *Worker) AddChannel(ctx context.Context, name string) error {
	w.mu.Lock()
	found := false
	for _, c := range w.channels {
		if c == name {
			found = true
			break
		}
	}
	if !found {
		w.channels = append(w.channels, name)
	}
	w.mu.Unlock()

	return w.saveState(ctx)
}

func (w *Worker) RemoveChannel(ctx context.Context, name string) error {
	w.mu.Lock()
	kept := w.channels[:0]
	for _, c := range w.channels {
		if c != name {
			kept = append(kept, c)
		}
	}
	w.channels = kept
	w.mu.Unlock()

	return w.saveState(ctx)
}

func (w *Worker) LoggedIn() bool {
	return w.client.Authenticated()
}

func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// StartSchedule transitions Stopped -> Running: it requires a selected
// league and prior login, fires an out-of-band startup check, then
// brings up the fixed job group.
func (w *Worker) StartSchedule(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	if w.league == nil {
		w.mu.Unlock()
		return ErrNoLeague
	}
	if !w.client.Authenticated() {
		w.mu.Unlock()
		return ErrNotLoggedIn
	}

	stop := make(chan struct{})
	w.stopJobs = stop
	w.running = true
	w.mu.Unlock()

	for _, spec := range jobSpecs() {
		go w.runJob(spec, stop)
	}

	go func() {
		w.runCheck(context.Background(), true, "startup phase 1")
		w.runCheck(context.Background(), false, "startup phase 2")
	}()

	slog.Info("Schedule started", "guild_id", w.guildID)
	return w.saveState(ctx)
}

// StopSchedule transitions Running -> Stopped: future firings are
// cancelled immediately, an in-flight tick completes normally.
func (w *Worker) StopSchedule(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return ErrNotRunning
	}
	close(w.stopJobs)
	w.stopJobs = nil
	w.running = false
	w.mu.Unlock()

	slog.Info("All jobs unscheduled", "guild_id", w.guildID)
	return w.saveState(ctx)
}

// shutdown tears the job group down without persisting state, so a
// running worker resumes after a process restart.
func (w *Worker) shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopJobs != nil {
		close(w.stopJobs)
		w.stopJobs = nil
	}
	w.running = false
}

func (w *Worker) runJob(spec jobSpec, stop chan struct{}) {
	for {
		timer := time.NewTimer(time.Until(spec.next(time.Now())))
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			w.runCheck(context.Background(), spec.heavy, spec.name)
		}
	}
}

// RunCheckOnce is the force-a-report operation: one immediate full check
// (heavy and light halves), returning how many lines were dispatched.
func (w *Worker) RunCheckOnce(ctx context.Context) (int, error) {
	if w.League() == nil {
		return 0, ErrNoLeague
	}
	if !w.client.Authenticated() {
		return 0, ErrNotLoggedIn
	}

	if !w.checkMu.TryLock() {
		return 0, ErrCheckInProgress
	}
	defer w.checkMu.Unlock()

	sentHeavy, err := w.doCheck(ctx, true, "manual")
	if err != nil {
		return 0, err
	}
	sentLight, err := w.doCheck(ctx, false, "manual")
	if err != nil {
		return sentHeavy, err
	}
	return sentHeavy + sentLight, nil
}

// runCheck is the scheduled entry point. The tick is skipped outright
// when another check holds the gate or the guild is unreachable; missed
// checks are never queued.
func (w *Worker) runCheck(ctx context.Context, heavyCheck bool, job string) {
	if w.League() == nil {
		slog.Info("No league selected, skipping check", "guild_id", w.guildID, "job", job)
		return
	}

	// an unreachable guild cannot receive the notifications, so the tick
	// no-ops and the baseline stays put until delivery is possible again
	if !w.notifier.GuildAvailable(w.guildID) {
		slog.Info("Guild unavailable, skipping check", "guild_id", w.guildID, "job", job)
		metrics.ChecksSkipped.WithLabelValues(job).Inc()
		return
	}

	if !w.checkMu.TryLock() {
		slog.Info("Skipping check, another check in progress", "guild_id", w.guildID, "job", job)
		metrics.ChecksSkipped.WithLabelValues(job).Inc()
		return
	}
	defer w.checkMu.Unlock()

	if _, err := w.doCheck(ctx, heavyCheck, job); err != nil {
		slog.Error("Check aborted", "guild_id", w.guildID, "job", job, "error", err)
		metrics.CheckErrors.WithLabelValues(job).Inc()
	}
}

// doCheck runs one tick: read-through fetch, diff against the baseline,
// dispatch, then advance the baseline. A fetch error aborts the tick
// before any state is mutated; the next tick retries from the existing
// baseline.
func (w *Worker) doCheck(ctx context.Context, heavyCheck bool, job string) (int, error) {
	league := *w.League()
	slog.Info("Start check", "guild_id", w.guildID, "job", job, "league_id", league.ID, "year", league.Year)
	metrics.ChecksRun.WithLabelValues(job).Inc()

	w.loadBaselines(ctx, league)

	var updates []string

	if heavyCheck {
		newMaster, err := w.fetchMasterGames(ctx, league)
		if err != nil {
			return 0, fmt.Errorf("fetch master game list: %w", err)
		}
		if w.lastMaster != nil {
			updates = append(updates, w.engine.DiffMasterGames(w.lastMaster, newMaster)...)
		} else {
			slog.Info("Storing first master game list", "guild_id", w.guildID)
		}

		sent := w.dispatch(ctx, updates)

		w.lastMaster = newMaster
		w.snapshots.SetBaseline(ctx, snapshot.MasterGameYearKey(league.Year), newMaster)
		return sent, nil
	}

	newLeagueYear, err := w.fetchLeagueYear(ctx, league)
	if err != nil {
		return 0, fmt.Errorf("fetch league year: %w", err)
	}
	newActions, err := w.fetchLeagueActions(ctx, league)
	if err != nil {
		return 0, fmt.Errorf("fetch league actions: %w", err)
	}

	if w.lastLeagueYear != nil {
		updates = append(updates, w.engine.DiffLeagueYear(w.lastLeagueYear, newLeagueYear)...)
		updates = append(updates, w.engine.DiffStatusAndMessages(w.lastLeagueYear, newLeagueYear)...)
	} else {
		slog.Info("Storing first league year snapshot", "guild_id", w.guildID)
	}
	if w.lastActions != nil {
		updates = append(updates, w.engine.DiffLeagueActions(w.lastActions, newActions)...)
	} else {
		slog.Info("Storing first league actions", "guild_id", w.guildID)
	}

	sent := w.dispatch(ctx, updates)

	// baseline advances only after every entity of this tick was diffed
	w.lastLeagueYear = newLeagueYear
	w.lastActions = newActions
	w.snapshots.SetBaseline(ctx, snapshot.LeagueYearKey(league), newLeagueYear)
	w.snapshots.SetBaseline(ctx, snapshot.LeagueActionsKey(league), newActions)
	return sent, nil
}

// loadBaselines backfills in-memory baselines from the baseline tier
// after a restart, so the first tick doesn't announce the whole league.
func (w *Worker) loadBaselines(ctx context.Context, league domain.League) {
	if w.lastLeagueYear == nil {
		var ly domain.LeagueYear
		if w.snapshots.GetBaseline(ctx, snapshot.LeagueYearKey(league), &ly) {
			w.lastLeagueYear = &ly
		}
	}
	if w.lastActions == nil {
		var actions []domain.LeagueAction
		if w.snapshots.GetBaseline(ctx, snapshot.LeagueActionsKey(league), &actions) {
			w.lastActions = actions
		}
	}
	if w.lastMaster == nil {
		var master domain.MasterGameYearSet
		if w.snapshots.GetBaseline(ctx, snapshot.MasterGameYearKey(league.Year), &master) {
			w.lastMaster = master
		}
	}
}

func (w *Worker) fetchLeagueYear(ctx context.Context, league domain.League) (*domain.LeagueYear, error) {
	return snapshot.ReadThrough(ctx, w.snapshots, snapshot.LeagueYearKey(league),
		func(ctx context.Context) (*domain.LeagueYear, error) {
			return w.client.GetLeagueYear(ctx, league)
		})
}

func (w *Worker) fetchLeagueActions(ctx context.Context, league domain.League) ([]domain.LeagueAction, error) {
	return snapshot.ReadThrough(ctx, w.snapshots, snapshot.LeagueActionsKey(league),
		func(ctx context.Context) ([]domain.LeagueAction, error) {
			return w.client.GetLeagueActions(ctx, league)
		})
}

func (w *Worker) fetchMasterGames(ctx context.Context, league domain.League) (domain.MasterGameYearSet, error) {
	return snapshot.ReadThrough(ctx, w.snapshots, snapshot.MasterGameYearKey(league.Year),
		func(ctx context.Context) (domain.MasterGameYearSet, error) {
			games, err := w.client.GetMasterGameYear(ctx, league.Year)
			if err != nil {
				return nil, err
			}
			set := make(domain.MasterGameYearSet, len(games))
			for _, g := range games {
				set[g.MasterGameID] = g
			}
			return set, nil
		})
}
