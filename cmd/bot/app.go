package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fantasy-critic-bot/internal/adapters/cache/memory"
	"fantasy-critic-bot/internal/adapters/discord"
	"fantasy-critic-bot/internal/adapters/discord/commands"
	"fantasy-critic-bot/internal/adapters/fantasycritic"
	"fantasy-critic-bot/internal/adapters/storage/postgres"
	"fantasy-critic-bot/internal/config"
	"fantasy-critic-bot/internal/core/ports"
	"fantasy-critic-bot/internal/core/services/diff"
	"fantasy-critic-bot/internal/core/services/snapshot"
	"fantasy-critic-bot/internal/core/services/worker"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	config             *config.Config
	store              *postgres.PostgresStore
	cache              *memory.Store
	session            *discordgo.Session
	manager            *worker.Manager
	metricsServer      *http.Server
	registeredCommands []*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to storage", "error", err)
		return nil, err
	}

	session, err := discord.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	cache := memory.NewStore()
	snapshots := snapshot.New(cache, cfg.LiveCacheTTL, cfg.BaselineCacheTTL)
	notifier := discord.NewAdapter(session, session.State)
	engine := diff.New(cfg.ScoreThreshold)

	manager := worker.NewManager(cfg,
		func() ports.LeagueClient { return fantasycritic.NewClient(cfg.APIBaseURL) },
		notifier, store, snapshots, cache, engine)

	botHandlers := &commands.BotHandler{Manager: manager}
	router := commands.NewRouter()
	router.Register("set-league", botHandlers.SetLeague)
	router.Register("fc-login", botHandlers.FCLogin)
	router.Register("start-tracking", botHandlers.StartTracking)
	router.Register("stop-tracking", botHandlers.StopTracking)
	router.Register("follow-channel", botHandlers.FollowChannel)
	router.Register("unfollow-channel", botHandlers.UnfollowChannel)
	router.Register("tracker-status", botHandlers.TrackerStatus)
	router.Register("score-report", botHandlers.ScoreReport)
	router.Register("publisher-report", botHandlers.PublisherReport)
	router.Register("game-info", botHandlers.GameInfo)
	router.Register("run-check", botHandlers.RunCheck)

	session.AddHandler(commands.ReadyHandler)
	session.AddHandler(router.HandleFunc())
	session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildCreate) {
		manager.HandleGuildCreate(context.Background(), g.ID)
	})
	session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildDelete) {
		if err := manager.HandleGuildDelete(context.Background(), g.ID); err != nil {
			slog.Error("Failed to clean up removed guild", "guild_id", g.ID, "error", err)
		}
	})

	return &App{
		config:  cfg,
		store:   store,
		cache:   cache,
		session: session,
		manager: manager,
	}, nil
}

func (a *App) Run() error {
	if err := a.session.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	appCommands := commands.GetApplicationCommands()
	a.registeredCommands = commands.RegisterCommands(a.session, appCommands, a.session.State.User.ID, "")

	if a.config.MetricsAddr != "" {
		a.metricsServer = &http.Server{Addr: a.config.MetricsAddr, Handler: promhttp.Handler()}
		go func() {
			slog.Info("Metrics server listening", "addr", a.config.MetricsAddr)
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	slog.Info("Fantasy Critic bot is running")
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	// stop schedules without persisting, so running workers resume on boot
	if a.manager != nil {
		a.manager.StopAll()
	}

	var errs []error

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if a.session != nil {
		if err := a.session.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.cache != nil {
		a.cache.Close()
	}

	if a.store != nil {
		a.store.Close()
	}

	return errors.Join(errs...)
}
