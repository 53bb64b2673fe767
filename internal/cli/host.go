package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mengchil/visage"
	"github.com/mengchil/visage/internal/config"
	"github.com/mengchil/visage/internal/remote"
	"github.com/mengchil/visage/pkg/adapters/file"
	httpadapter "github.com/mengchil/visage/pkg/adapters/http"
	"github.com/mengchil/visage/pkg/adapters/redis"
	"github.com/mengchil/visage/pkg/observability"
	"github.com/mengchil/visage/pkg/ports"
	"github.com/mengchil/visage/pkg/presets"
	"github.com/mengchil/visage/pkg/runner"
)

// Host is the assembled process: one engine plus every surface the
// configuration asked for.
type Host struct {
	Engine  *visage.Engine
	Metrics *observability.Metrics
	HTTP    *httpadapter.Server
	Remote  *remote.Sync

	// ExtraPublishers receive frames besides the HTTP stream. Set
	// before Run.
	ExtraPublishers []ports.SnapshotPublisher

	cfg    config.Config
	logger *slog.Logger
}

// NewHost builds the engine and its surfaces from the configuration.
func NewHost(cfg config.Config, logger *slog.Logger) (*Host, error) {
	source, err := buildPresetSource(cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStateStore(cfg)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()

	engineOpts := []visage.Option{
		visage.WithPresets(source),
		visage.WithLogger(logger),
		visage.WithAlpha(cfg.Alpha),
		visage.WithInitialExpression(cfg.Initial),
		visage.WithLifecycleHooks(metrics.Hooks()),
	}
	if store != nil {
		engineOpts = append(engineOpts, visage.WithStateStore(store), visage.WithStateKey(cfg.StateKey))
	}

	engine, err := visage.New(engineOpts...)
	if err != nil {
		return nil, err
	}

	h := &Host{
		Engine:  engine,
		Metrics: metrics,
		HTTP:    httpadapter.NewServer(engine, source, logger),
		cfg:     cfg,
		logger:  logger,
	}

	if cfg.RemoteURL != "" {
		h.Remote = remote.New(remote.Config{
			URL:            cfg.RemoteURL,
			ReconnectDelay: cfg.ReconnectDelay,
		}, engine, logger, metrics.Hooks())
	}

	return h, nil
}

func buildPresetSource(cfg config.Config) (ports.PresetSource, error) {
	if cfg.Catalog != "" {
		return file.LoadCatalog(cfg.Catalog)
	}
	return presets.Registry()
}

func buildStateStore(cfg config.Config) (ports.StateStore, error) {
	switch {
	case cfg.RedisAddr != "":
		return redis.NewStore(cfg.RedisAddr), nil
	case cfg.StateDir != "":
		return file.NewStore(cfg.StateDir)
	default:
		return nil, nil
	}
}

// Run serves HTTP, starts the remote channel and drives the frame loop
// until ctx is cancelled, then shuts everything down.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mux := http.NewServeMux()
	mux.Handle("/", h.HTTP.Handler())
	mux.Handle("/metrics", h.Metrics.Handler())

	srv := &http.Server{Addr: h.cfg.Listen, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		h.logger.Info("control surface listening", "addr", h.cfg.Listen)
		serverErrors <- srv.ListenAndServe()
	}()

	if h.Remote != nil {
		h.Remote.Start()
	}

	loopOpts := []runner.Option{
		runner.WithLogger(h.logger),
		runner.WithFPS(h.cfg.FPS),
		runner.WithPublisher(h.HTTP),
	}
	for _, p := range h.ExtraPublishers {
		loopOpts = append(loopOpts, runner.WithPublisher(p))
	}

	loopErrors := make(chan error, 1)
	go func() {
		loopErrors <- h.Engine.Run(ctx, loopOpts...)
	}()

	var runErr error
	select {
	case err := <-serverErrors:
		runErr = fmt.Errorf("http server: %w", err)
		cancel()
		<-loopErrors
	case <-ctx.Done():
		<-loopErrors
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		h.logger.Warn("http shutdown incomplete", "err", err)
		_ = srv.Close()
	}

	h.Close()
	return runErr
}

// Close tears down the remote channel, the stream clients and the
// engine. Idempotent through its parts.
func (h *Host) Close() {
	if h.Remote != nil {
		_ = h.Remote.Close()
	}
	_ = h.HTTP.Close()
	_ = h.Engine.Close()
	h.logger.Info("host stopped")
}
