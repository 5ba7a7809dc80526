package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/joinpeakapp/peak/internal/cli"
	"github.com/joinpeakapp/peak/internal/config"
	"github.com/joinpeakapp/peak/internal/db"
	"github.com/joinpeakapp/peak/internal/logging"
	"github.com/joinpeakapp/peak/internal/message"
	"github.com/joinpeakapp/peak/internal/notify"
	"github.com/joinpeakapp/peak/internal/repository"
	"github.com/joinpeakapp/peak/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Config file: env var or default ~/.peak/config.toml
	configPath := os.Getenv("PEAK_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger, logCloser := logging.Setup(logging.SetupParams{LogFile: cfg.LogFile, LogLevel: cfg.LogLevel})
	defer logCloser.Close()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	workoutRepo := repository.NewSQLiteWorkoutRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	kv := repository.NewSQLiteKVStore(database)
	streakStore := repository.NewKVStreakStore(kv, loc)
	settingsStore := repository.NewKVSettingsStore(kv)
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewLogUseCaseObserver(logger)
	now := func() time.Time { return time.Now().In(loc) }

	reminderOpts := service.ReminderOptions{
		Settings:    cfg.ReminderSettings(loc),
		CallTimeout: cfg.NotifyTimeout(),
		Concurrency: cfg.NotifyConcurrency,
		Now:         now,
	}
	streakOpts := service.StreakOptions{
		Policy:   cfg.WindowPolicy(),
		Location: loc,
		Now:      now,
	}

	// Wire services
	composer := message.NewCachedComposer(message.NewVariantComposer(), cfg.MessageCacheTTL)
	reminders := service.NewReminderService(
		workoutRepo, sessionRepo, settingsStore,
		notify.NewSQLiteStore(database), composer,
		reminderOpts, logger, observer,
	)
	streaks := service.NewStreakService(workoutRepo, streakStore, reminders, streakOpts, logger, observer)

	app := &cli.App{
		Workouts:   service.NewWorkoutService(workoutRepo, reminders, logger, observer),
		Reminders:  reminders,
		Streaks:    streaks,
		Completion: service.NewCompletionService(uow, reminders, streakOpts, logger, observer),
		Policy:     cfg.WindowPolicy(),
		Location:   loc,
		Now:        now,
	}

	// Detect interactive terminal for forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	sweepExpired(ctx, logger, app)

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// sweepExpired clears lapsed streaks before any command reads them.
// Failures are logged only.
func sweepExpired(ctx context.Context, logger *slog.Logger, app *cli.App) {
	workouts, err := app.Workouts.List(ctx)
	if err != nil {
		logger.WarnContext(ctx, "startup sweep skipped", "error", err)
		return
	}
	if _, err := app.Streaks.SweepExpiredStreaks(ctx, workouts); err != nil {
		logger.WarnContext(ctx, "startup sweep finished with errors", "error", err)
	}
}
