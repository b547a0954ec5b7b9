package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"FishingDay/internal/autopilot"
	"FishingDay/internal/config"
	"FishingDay/internal/console"
	"FishingDay/internal/game"
	"FishingDay/internal/logger"
	"FishingDay/internal/notifier"
	"FishingDay/internal/recorder"
	"FishingDay/internal/scheduler"
)

var version = "dev"

func main() {
	var (
		cfgPath     string
		runAuto     bool
		days        int
		seed        int64
		carryWealth bool
		fast        bool
		showVersion bool
	)
	pflag.StringVarP(&cfgPath, "config", "c", "configs/config.yaml", "path to config file")
	pflag.BoolVar(&runAuto, "autopilot", false, "play unattended on the autopilot cron schedule")
	pflag.IntVar(&days, "days", 0, "autopilot days to play (overrides autopilot.days)")
	pflag.Int64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock (overrides game.seed)")
	pflag.BoolVar(&carryWealth, "carry-wealth", false, "carry closing wealth into the next day")
	pflag.BoolVar(&fast, "fast", false, "skip the casting and judging pauses")
	pflag.BoolVarP(&showVersion, "version", "v", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Println("fishing", version)
		return
	}

	if !pflag.CommandLine.Changed("config") {
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			cfgPath = v
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if pflag.CommandLine.Changed("autopilot") {
		cfg.Autopilot.Enabled = runAuto
	}
	if pflag.CommandLine.Changed("days") {
		cfg.Autopilot.Days = days
	}
	if pflag.CommandLine.Changed("seed") {
		cfg.Game.Seed = seed
	}
	if pflag.CommandLine.Changed("carry-wealth") {
		cfg.Game.CarryWealth = carryWealth
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, fast, log); err != nil {
		log.Error("fishing day stopped", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, fast bool, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rec := openRecorder(cfg, log)
	defer rec.Close()

	hooks := []game.DayHook{recorder.Hook(rec)}
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		hooks = append(hooks, notifier.NewDigestHook(tn, 2, log))
		log.Info("telegram digest enabled")
	}

	opts := game.Options{Hooks: hooks, Logger: log}
	if fast {
		opts.Delayer = game.NoDelay{}
	}

	var g *game.Game
	if cfg.Autopilot.Enabled {
		pilot := autopilot.New(cfg.Autopilot.Days, log)
		opts.Controller, opts.Listener = pilot, pilot
		opts.Delayer = game.NoDelay{}
		g = game.New(cfg.Game, opts)
	} else {
		con := console.New(os.Stdin, os.Stdout, cfg.Game)
		opts.Controller, opts.Listener = con, con
		g = game.New(cfg.Game, opts)
	}
	log.Info("session started", zap.String("session", g.SessionID()), zap.Bool("autopilot", cfg.Autopilot.Enabled))

	if tn != nil {
		go tn.StartPolling(ctx, notifier.SessionCommands(g.SessionID(), rec, log))
	}

	var err error
	if cfg.Autopilot.Enabled {
		err = runAutopilot(ctx, cfg, g, log)
	} else {
		err = runInteractive(ctx, g)
	}

	printSummary(g.SessionID(), rec, log)
	return err
}

func openRecorder(cfg *config.Config, log *zap.Logger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}

// runGrace bounds how long a signal waits for the day in progress to finish
// before the recorder is closed.
const runGrace = 2 * time.Second

// runInteractive plays until the player stops.
func runInteractive(ctx context.Context, g *game.Game) error {
	errCh := make(chan error, 1)
	go func() { errCh <- g.Run(ctx) }()
	return awaitRun(ctx, errCh, runGrace)
}

// awaitRun returns the game's result, or after a signal waits up to grace for
// it. A console read blocked on stdin cannot be interrupted, so past the grace
// period the goroutine is left behind and its day is not recorded.
func awaitRun(ctx context.Context, errCh <-chan error, grace time.Duration) error {
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case err := <-errCh:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-t.C:
		return nil
	}
}

func runAutopilot(ctx context.Context, cfg *config.Config, g *game.Game, log *zap.Logger) error {
	sched := scheduler.NewScheduler(ctx, g, cfg.Autopilot.Days, log)
	if err := sched.Register(cfg.Autopilot.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	log.Info("autopilot running, press Ctrl+C to stop", zap.String("cron", cfg.Autopilot.Cron))
	select {
	case <-sched.Done():
		return sched.Err()
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping")
		return nil
	}
}

func printSummary(sessionID string, rec recorder.Recorder, log *zap.Logger) {
	ctx := context.Background()
	s, err := rec.Summary(ctx, sessionID)
	if err != nil {
		log.Error("session summary", zap.Error(err))
		return
	}
	fmt.Printf("\nThanks for playing! Days: %d, wins: %d, losses: %d, ties: %d.\n",
		s.Days, s.Wins, s.Losses, s.Ties)
}
