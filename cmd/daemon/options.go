package main

import (
	"context"

	"github.com/genricoloni/ledboard/internal/admin"
	"github.com/genricoloni/ledboard/internal/config"
	"github.com/genricoloni/ledboard/internal/domain"
	"github.com/genricoloni/ledboard/internal/engine"
	"github.com/genricoloni/ledboard/internal/executor"
	"github.com/genricoloni/ledboard/internal/fetcher"
	"github.com/genricoloni/ledboard/internal/monitor"
	"github.com/genricoloni/ledboard/internal/player"
	"github.com/genricoloni/ledboard/internal/processor"
	"github.com/genricoloni/ledboard/internal/render"
	"github.com/genricoloni/ledboard/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// AppOptions is the application graph shared by main and the tests
var AppOptions = fx.Options(
	fx.Provide(
		newLogger,
		config.NewAppConfig,
		newClock,
		newStore,
		newBackend,
		newPlayer,
		newScreen,
		newRenderer,
		newPower,
		newEngine,
		newAdmin,
	),

	fx.Invoke(registerHooks),
)

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newClock(cfg *config.AppConfig) domain.Clock {
	return engine.NewRealClock(cfg)
}

func newStore(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig, clock domain.Clock) (*store.Store, error) {
	db, err := store.OpenDB(logger, cfg)
	if err != nil {
		return nil, err
	}

	s := store.NewStore(logger.Named("store"), db, cfg, clock)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return s.Close()
		},
	})
	return s, nil
}

func newBackend(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig) *executor.MPVBackend {
	downloader := fetcher.NewHTTPFetcher(logger.Named("fetcher"))
	b := executor.NewMPVBackend(logger.Named("backend"), downloader, cfg)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return b.Close()
		},
	})
	return b
}

func newPlayer(logger *zap.Logger, backend *executor.MPVBackend) *player.Player {
	return player.NewPlayer(logger.Named("player"), backend)
}

func newScreen(logger *zap.Logger, cfg *config.AppConfig) *domain.ScreenResolution {
	return monitor.NewScreenResolution(logger, cfg)
}

func newRenderer(logger *zap.Logger, cfg *config.AppConfig, res *domain.ScreenResolution) domain.Renderer {
	composer := processor.NewFrameComposer(logger.Named("composer"), res, cfg)
	presenter := executor.NewPresenter(logger.Named("presenter"), cfg)
	return render.NewSurface(logger.Named("render"), composer, presenter)
}

func newPower(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig) domain.PowerController {
	p := monitor.NewDisplayPower(logger.Named("power"), cfg)
	lc.Append(fx.Hook{
		OnStart: p.Start,
		OnStop:  p.Stop,
	})
	return p
}

func newEngine(
	lc fx.Lifecycle,
	logger *zap.Logger,
	cfg *config.AppConfig,
	clock domain.Clock,
	st *store.Store,
	pl *player.Player,
	renderer domain.Renderer,
	power domain.PowerController,
) *engine.Engine {
	e := engine.NewEngine(logger.Named("engine"), cfg, clock, st, pl, renderer, power)
	lc.Append(fx.Hook{
		OnStart: e.Start,
		OnStop:  e.Stop,
	})
	return e
}

func newAdmin(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig, st *store.Store, e *engine.Engine) (*admin.Server, error) {
	srv, err := admin.NewServer(logger.Named("admin"), cfg, st, e)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: srv.Start,
		OnStop:  srv.Stop,
	})
	return srv, nil
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, _ *engine.Engine, srv *admin.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Ledboard Daemon Started", zap.String("admin", srv.Addr()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			return nil
		},
	})
}
