package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fantasy-critic-bot/internal/config"
	"fantasy-critic-bot/internal/core/ports"
	"fantasy-critic-bot/internal/core/services/diff"
	"fantasy-critic-bot/internal/core/services/snapshot"
)

// Manager owns one Worker per Discord guild. Workers are created lazily
// when a guild becomes visible and torn down when the bot is removed
// from it. Each worker gets its own API client because credentials are
// per guild.
type Manager struct {
	cfg       *config.Config
	newClient func() ports.LeagueClient
	notifier  ports.Notifier
	store     ports.StateStore
	snapshots *snapshot.Cache
	dedup     ports.Cache
	engine    *diff.Engine

	mu      sync.Mutex
	workers map[string]*Worker
}

func NewManager(cfg *config.Config, newClient func() ports.LeagueClient, notifier ports.Notifier,
	store ports.StateStore, snapshots *snapshot.Cache, dedup ports.Cache, engine *diff.Engine) *Manager {
	return &Manager{
		cfg:       cfg,
		newClient: newClient,
		notifier:  notifier,
		store:     store,
		snapshots: snapshots,
		dedup:     dedup,
		engine:    engine,
		workers:   make(map[string]*Worker),
	}
}

// Worker returns the guild's worker, creating it on first use.
func (m *Manager) Worker(guildID string) *Worker {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.workers[guildID]; ok {
		return w
	}
	w := New(guildID, Dependencies{
		Config:    m.cfg,
		Client:    m.newClient(),
		Notifier:  m.notifier,
		Store:     m.store,
		Snapshots: m.snapshots,
		Dedup:     m.dedup,
		Engine:    m.engine,
	})
	m.workers[guildID] = w
	return w
}

// HandleGuildCreate fires when a guild becomes visible at startup or
// when the bot is invited. Stored state is reloaded so a worker that
// was running before a restart resumes its schedule.
func (m *Manager) HandleGuildCreate(ctx context.Context, guildID string) {
	slog.Info("Guild visible, initializing worker", "guild_id", guildID)
	w := m.Worker(guildID)
	if err := w.LoadState(ctx); err != nil {
		slog.Error("Failed to load worker state", "guild_id", guildID, "error", err)
	}
}

// HandleGuildDelete fires when the bot is removed from a guild: the
// schedule stops and the stored state is discarded.
func (m *Manager) HandleGuildDelete(ctx context.Context, guildID string) error {
	m.mu.Lock()
	w, ok := m.workers[guildID]
	if ok {
		delete(m.workers, guildID)
	}
	m.mu.Unlock()

	if ok {
		w.shutdown()
	}

	if err := m.store.Delete(ctx, guildID); err != nil {
		return fmt.Errorf("delete worker state: %w", err)
	}
	slog.Info("Guild removed, worker discarded", "guild_id", guildID)
	return nil
}

// StopAll tears down every schedule without touching stored state, so
// running workers resume after the process restarts.
func (m *Manager) StopAll() {
	m.mu.Lock()
	workers := make([]*Worker, 0, len(m.workers))
	for _, w := range m.workers {
		workers = append(workers, w)
	}
	m.mu.Unlock()

	for _, w := range workers {
		w.shutdown()
	}
	slog.Info("All workers stopped", "count", len(workers))
}
