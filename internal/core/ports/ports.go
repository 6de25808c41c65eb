package ports

import (
	"context"
	"errors"
	"time"

	"fantasy-critic-bot/internal/core/domain"
)

// ErrAuthExpired means the stored credentials no longer work and a
// fresh login is required.
var ErrAuthExpired = errors.New("authentication expired")

// LeagueClient is the remote Fantasy Critic API boundary. All fetches
// are opaque to the diff engine; auth refresh happens inside the client
// and surfaces through OnAuthRefresh so the owner can persist it.
type LeagueClient interface {
	Login(ctx context.Context, emailAddress, password string) error
	Authenticated() bool
	Auth() *domain.AuthCredentials
	SetAuth(auth *domain.AuthCredentials)
	OnAuthRefresh(fn func(*domain.AuthCredentials))

	GetLeagueYear(ctx context.Context, league domain.League) (*domain.LeagueYear, error)
	GetLeagueActions(ctx context.Context, league domain.League) ([]domain.LeagueAction, error)
	GetMasterGameYear(ctx context.Context, year int) ([]domain.MasterGameYear, error)
	GetLeagueUpcoming(ctx context.Context, league domain.League) ([]domain.UpcomingGame, error)
}

// Notifier delivers one text message to a named channel of a guild.
// GuildAvailable reports whether the guild is currently reachable, so
// callers can hold work for a guild that cannot receive it.
type Notifier interface {
	GuildAvailable(guildID string) bool
	SendText(guildID, channelName, message string) error
}

// StateStore is a key-document store for per-guild worker state.
// Get returns (nil, nil) when no document exists for the guild.
type StateStore interface {
	Get(ctx context.Context, guildID string) (*domain.WorkerState, error)
	Save(ctx context.Context, state *domain.WorkerState) error
	Delete(ctx context.Context, guildID string) error
}

// Cache is a key-value store with per-write expiry. Both snapshot tiers
// and the notification dedup window run through it, distinguished only
// by key prefix and TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
