// Package snapshot layers the two snapshot cache tiers over the shared
// key-value store. The live tier absorbs duplicate upstream calls within
// one tick window; the baseline tier holds each league's last-seen
// snapshot so restarts don't re-announce the whole league as new.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fantasy-critic-bot/internal/core/domain"
	"fantasy-critic-bot/internal/core/ports"
)

const (
	DefaultLiveTTL     = 30 * time.Second
	DefaultBaselineTTL = 24 * time.Hour

	livePrefix = "live/"
)

type Cache struct {
	kv          ports.Cache
	liveTTL     time.Duration
	baselineTTL time.Duration
}

func New(kv ports.Cache, liveTTL, baselineTTL time.Duration) *Cache {
	return &Cache{
		kv:          kv,
		liveTTL:     liveTTL,
		baselineTTL: baselineTTL,
	}
}

// Keys are namespaced by entity type and league identity so no two
// leagues contend for the same entry.

func LeagueYearKey(league domain.League) string {
	return fmt.Sprintf("LeagueYear/%s/%d", league.ID, league.Year)
}

func LeagueActionsKey(league domain.League) string {
	return fmt.Sprintf("LeagueActions/%s/%d", league.ID, league.Year)
}

func MasterGameYearKey(year int) string {
	return "MasterGameYear/" + strconv.Itoa(year)
}

func (c *Cache) GetLive(ctx context.Context, key string, dest any) bool {
	return c.get(ctx, livePrefix+key, dest)
}

func (c *Cache) SetLive(ctx context.Context, key string, value any) {
	c.set(ctx, livePrefix+key, value, c.liveTTL)
}

func (c *Cache) GetBaseline(ctx context.Context, key string, dest any) bool {
	return c.get(ctx, key, dest)
}

func (c *Cache) SetBaseline(ctx context.Context, key string, value any) {
	c.set(ctx, key, value, c.baselineTTL)
}

func (c *Cache) get(ctx context.Context, key string, dest any) bool {
	raw, ok := c.kv.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("Discarding undecodable cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Error("Failed to encode cache entry", "key", key, "error", err)
		return
	}
	c.kv.Set(ctx, key, raw, ttl)
}

// ReadThrough returns the live-tier value for key, fetching from the
// remote collaborator and populating the live tier on a miss. This is
// the only path that performs network I/O for an entity type within one
// tick window.
func ReadThrough[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.GetLive(ctx, key, &cached) {
		return cached, nil
	}

	fetched, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.SetLive(ctx, key, fetched)
	return fetched, nil
}
