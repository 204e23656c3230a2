// Package container provides dependency injection for the application.
package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/application/services"
	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
	"github.com/remotedeck/remotedeck/internal/domain/repositories"
	infracaps "github.com/remotedeck/remotedeck/internal/infrastructure/capabilities"
	"github.com/remotedeck/remotedeck/internal/infrastructure/config"
	"github.com/remotedeck/remotedeck/internal/infrastructure/drivers"
	"github.com/remotedeck/remotedeck/internal/infrastructure/metrics"
	"github.com/remotedeck/remotedeck/internal/infrastructure/persistence/file"
	"github.com/remotedeck/remotedeck/internal/infrastructure/persistence/memory"
	"github.com/remotedeck/remotedeck/internal/infrastructure/transport"
	"github.com/remotedeck/remotedeck/internal/infrastructure/validation"
)

// Container holds all application dependencies.
type Container struct {
	cfg        *config.RuntimeConfig
	repo       repositories.WorkspaceRepository
	saver      *file.DebouncedSaver
	metrics    *metrics.Recorder
	store      *services.WorkspaceStore
	dispatcher *services.Dispatcher
	surface    *services.ControlSurface
	hub        *transport.Hub
	server     *transport.Server
	logger     *slog.Logger
}

// Options configure the container.
type Options struct {
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Repository replaces the file or in-memory repository chosen from
	// Config.
	Repository repositories.WorkspaceRepository
	// Drivers replaces the OS drivers.
	Drivers *ports.Drivers
}

// New creates a new dependency injection container. The workspace is
// loaded here; a missing workspace starts from a fresh one, which is
// saved after the debounce delay.
func New(ctx context.Context, opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.RuntimeConfig{}
	}
	cfg.ApplyDefaults()
	logger := opts.Logger

	repo := opts.Repository
	if repo == nil {
		var err error
		if repo, err = newRepository(cfg, logger); err != nil {
			return nil, err
		}
	}

	ws, err := repo.Load(ctx)
	fresh := errors.Is(err, repositories.ErrWorkspaceNotFound)
	if err != nil && !fresh {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	if fresh {
		logger.Info("no saved workspace, starting a new one")
		ws = nil
	}

	recorder := metrics.NewRecorder(cfg.RuntimeMetrics)
	saver := file.NewDebouncedSaver(repo, cfg.SaveDebounce, logger)
	store := services.NewWorkspaceStore(ws, saver, recorder, logger)
	if fresh {
		saver.ScheduleSave(store.Snapshot)
	}

	drv := newDrivers(cfg, logger)
	if opts.Drivers != nil {
		drv = *opts.Drivers
	}
	grant, err := effectiveGrant(cfg)
	if err != nil {
		return nil, err
	}
	gatekeeper := services.NewCapabilityGatekeeper(grant, cfg.SecurityLevel, logger)
	dispatcher := services.NewDispatcher(store, drv, gatekeeper, recorder, logger)

	hub := transport.NewHub(nil, logger)
	surface := services.NewControlSurface(store, dispatcher, hub,
		transport.AssetURLs{BaseURL: cfg.AssetsBaseURL}, logger)
	hub.SetPressHandler(surface)

	serverOpts := transport.Options{
		AssetsPrefix: cfg.AssetsBaseURL,
		AssetsDir:    cfg.AssetsDir,
	}
	if cfg.MetricsEnabled {
		serverOpts.Metrics = recorder.Handler()
	}
	server := transport.NewServer(surface, hub, serverOpts, logger)

	return &Container{
		cfg:        cfg,
		repo:       repo,
		saver:      saver,
		metrics:    recorder,
		store:      store,
		dispatcher: dispatcher,
		surface:    surface,
		hub:        hub,
		server:     server,
		logger:     logger,
	}, nil
}

func newRepository(cfg *config.RuntimeConfig, logger *slog.Logger) (repositories.WorkspaceRepository, error) {
	if cfg.Ephemeral {
		return memory.NewWorkspaceRepository(nil), nil
	}
	validator, err := validation.NewWorkspaceValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to build workspace validator: %w", err)
	}
	return file.NewWorkspaceRepository(cfg.WorkspacePath, validator, logger), nil
}

// effectiveGrant merges the configured grants with the grants file.
func effectiveGrant(cfg *config.RuntimeConfig) (capabilities.Grant, error) {
	grant := append(capabilities.NewGrant(), cfg.Grant...)
	if cfg.GrantsPath == "" {
		return grant, nil
	}
	stored, err := infracaps.NewGrantStore(cfg.GrantsPath).Load()
	if err != nil {
		return nil, err
	}
	for _, c := range stored {
		grant.Add(c)
	}
	return grant, nil
}

func newDrivers(cfg *config.RuntimeConfig, logger *slog.Logger) ports.Drivers {
	runner := drivers.NewExecRunner(cfg.DriverTimeout, logger)
	keys := drivers.NewKeystrokeHelper(runner, cfg.KeystrokeHelper)
	return ports.Drivers{
		Keys:  keys,
		Text:  keys,
		Media: keys,
		URLs:  drivers.NewSystemOpener(runner, cfg.Opener),
		Apps:  drivers.NewAppLauncher(runner),
		MIDI:  drivers.NewMIDIOutput(runner, cfg.KeystrokeHelper, cfg.MIDIPort, logger),
		Sleep: drivers.ContextSleeper{},
	}
}

// Handler returns the HTTP handler serving the control surface.
func (c *Container) Handler() http.Handler {
	return c.server.Handler()
}

// Shutdown disconnects clients, waits for presses still being dispatched
// and writes any pending workspace changes.
func (c *Container) Shutdown(ctx context.Context) error {
	c.hub.Close()
	if err := c.hub.Drain(ctx); err != nil {
		c.logger.Warn("control presses still running at shutdown", "error", err)
	}
	if err := c.saver.Flush(ctx); err != nil {
		return fmt.Errorf("failed to flush workspace: %w", err)
	}
	return nil
}

// Store returns the workspace store.
func (c *Container) Store() *services.WorkspaceStore {
	return c.store
}

// Surface returns the control surface.
func (c *Container) Surface() *services.ControlSurface {
	return c.surface
}

// Dispatcher returns the dispatch pipeline.
func (c *Container) Dispatcher() *services.Dispatcher {
	return c.dispatcher
}

// Hub returns the websocket hub.
func (c *Container) Hub() *transport.Hub {
	return c.hub
}

// Saver returns the debounced saver.
func (c *Container) Saver() *file.DebouncedSaver {
	return c.saver
}

// Workspace returns a copy of the current workspace.
func (c *Container) Workspace() *entities.Workspace {
	return c.store.Snapshot()
}

// Config returns the resolved runtime configuration.
func (c *Container) Config() *config.RuntimeConfig {
	return c.cfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
