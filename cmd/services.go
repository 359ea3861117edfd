package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xvierd/timerdeck/internal/adapters/clock"
	"github.com/xvierd/timerdeck/internal/adapters/git"
	"github.com/xvierd/timerdeck/internal/adapters/notification"
	"github.com/xvierd/timerdeck/internal/adapters/storage"
	"github.com/xvierd/timerdeck/internal/adapters/tui"
	"github.com/xvierd/timerdeck/internal/config"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/logging"
	"github.com/xvierd/timerdeck/internal/ports"
	"github.com/xvierd/timerdeck/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	logger   *slog.Logger
	logFile  io.Closer
	storage  ports.Storage
	clock    ports.Clock
	git      ports.GitDetector
	notifier *notification.Notifier
	audio    *notification.Audio
	sink     *tui.Sink
	settings *services.SettingsService
	history  *services.HistoryService
	queue    *services.QueueService
	timers   *services.TimerManager
	engine   *services.Engine
	state    *services.StateService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	var err error
	app.config, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using default configuration\n", err)
		app.config = config.DefaultConfig()
	}

	app.logger, app.logFile, err = logging.New(logging.Options{
		Path:    config.GetLogPath(app.config),
		Level:   app.config.Log.Level,
		Verbose: verbose,
		Stderr:  os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		app.logger = logging.Discard()
	}

	app.storage, err = openStorage(app.config)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	wd, _ := os.Getwd()
	app.clock = clock.System{}
	app.git = git.NewDetector(wd)
	app.notifier = notification.New(&app.config.Notifications)
	app.audio = notification.NewAudio(&app.config.Notifications)
	app.sink = tui.NewSink()

	app.settings = services.NewSettingsService(app.storage.Settings(), app.logger)
	app.settings.Load(ctx)
	if app.settings.Breath() == domain.DefaultBreathPreference() {
		if pref := app.config.BreathPreference(); pref != app.settings.Breath() {
			if err := app.settings.SetBreath(ctx, pref); err != nil {
				app.logger.Warn("could not apply configured breathing pattern", "error", err)
			}
		}
	}

	app.history = services.NewHistoryService(app.storage.History(), app.clock, app.git, app.logger)
	if err := app.history.Load(ctx); err != nil {
		return err
	}
	app.queue = services.NewQueueService(app.storage.Queue())
	if err := app.queue.Load(ctx); err != nil {
		return err
	}

	app.timers = services.NewTimerManager(services.TimerManagerOptions{
		Clock:    app.clock,
		Repo:     app.storage.Timers(),
		Settings: app.settings,
		Display:  app.sink,
		Notifier: app.notifier,
		Audio:    app.audio,
		Logger:   app.logger,
	})
	if err := app.timers.Load(ctx); err != nil {
		return err
	}

	app.engine = services.NewEngine(services.EngineOptions{
		Clock:            app.clock,
		Settings:         app.settings,
		History:          app.history,
		Queue:            app.queue,
		Display:          app.sink,
		Notifier:         app.notifier,
		Audio:            app.audio,
		Logger:           app.logger,
		Fixed:            app.config.FixedDurations(),
		Interval:         app.config.IntervalSession(),
		GraceDelay:       time.Duration(app.config.Timer.GraceDelay),
		FlowtimeMinBreak: time.Duration(app.config.Timer.FlowtimeMinBreak),
	})
	app.state = services.NewStateService(app.engine, app.timers, app.history, app.queue, app.settings)

	app.logger.Debug("services initialized", "backend", app.config.Storage.Backend, "data_dir", app.config.Storage.DataDir)
	return nil
}

// openStorage opens the configured document store.
func openStorage(cfg *config.Config) (ports.Storage, error) {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if cfg.Storage.Backend == config.BackendDiskv {
		return storage.NewDiskv(config.GetDiskvPath(cfg))
	}
	return storage.New(config.GetDBPath(cfg))
}

// cleanupServices stops the engines and closes all resources. It is safe
// to call more than once.
func cleanupServices() error {
	if app.engine != nil {
		app.engine.Close()
	}
	if app.timers != nil {
		app.timers.Close()
	}
	var err error
	if app.storage != nil {
		err = app.storage.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
	app = appDeps{}
	return err
}

// setupSignalHandler returns a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// todayStats feeds the interface's stats line.
func todayStats() (domain.Stats, int, int) {
	daily, weekly := app.history.Progress(app.settings.Goals())
	return app.history.Stats(), daily, weekly
}
