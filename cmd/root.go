// Package cmd provides command handlers for the CLI
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/config"
	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/engine"
	"git.sr.ht/~avern/wpcraft/executor"
	"git.sr.ht/~avern/wpcraft/index"
	"git.sr.ht/~avern/wpcraft/scheduler"
	"git.sr.ht/~avern/wpcraft/selector"
	"git.sr.ht/~avern/wpcraft/src/scraft"
	"git.sr.ht/~avern/wpcraft/state"
)

// Execute builds the engine and runs the command line.
func Execute() {
	if err := run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfgPath := config.DefaultPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)

	store, err := state.Open(cfg.StateFile(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	eng := engine.New(
		cfg,
		index.NewCache(cfg.CachePath(), logger),
		store,
		scraft.NewClient(logger),
		executor.NewWallpaperSetter(config.Expand(cfg.ScriptPath), logger),
		scheduler.NewCronScheduler(logger),
		selector.NewSeeded(),
		resolveResolution(cfg, logger),
		logger,
	)

	next := NewNextHandler(eng, logger)
	prev := NewPreviousHandler(eng, logger)
	fwd := NewForwardHandler(eng, logger)
	status := NewStatusHandler(eng, logger)
	update := NewUpdateHandler(eng, logger)
	use := NewUseHandler(eng, cfg, cfgPath, logger)
	minScore := NewMinScoreHandler(eng, cfg, cfgPath, logger)
	judge := NewJudgeHandler(eng, logger)
	show := NewShowHandler(eng, logger)
	wallpaper := NewWallpaperHandler(eng, logger)
	auto := NewAutoHandler(eng, logger)

	root := &cli.Command{
		Name:  constants.AppName,
		Usage: "Browse wallpaperscraft images from the command line",
		Commands: []*cli.Command{
			{
				Name:   "next",
				Usage:  "Switch to the next wallpaper",
				Flags:  next.GetFlags(),
				Action: next.Handle,
			},
			{
				Name:    "prev",
				Aliases: []string{"previous"},
				Usage:   "Go back to the previously shown wallpaper",
				Action:  prev.Handle,
			},
			{
				Name:   "forward",
				Usage:  "Go forward again after 'prev'",
				Action: fwd.Handle,
			},
			{
				Name:   "status",
				Usage:  "Display information about the current wallpaper",
				Action: status.Handle,
			},
			{
				Name:   "update",
				Usage:  "Refresh the list of available wallpapers",
				Action: update.Handle,
			},
			use.Command(),
			{
				Name:      "min_score",
				Usage:     "Only select wallpapers rated at least this score (0 clears)",
				ArgsUsage: "<score>",
				Action:    minScore.Handle,
			},
			{
				Name:   "like",
				Usage:  "Mark the current wallpaper as liked",
				Action: judge.HandleLike,
			},
			{
				Name:   "dislike",
				Usage:  "Mark the current wallpaper as disliked",
				Action: judge.HandleDislike,
			},
			{
				Name:   "unlike",
				Usage:  "Remove the like/dislike mark from the current wallpaper",
				Action: judge.HandleUnlike,
			},
			show.Command(),
			{
				Name:      "wallpaper",
				Aliases:   []string{"wp"},
				Usage:     "Immediately set the wallpaper with the given id",
				ArgsUsage: "<id>",
				Flags:     wallpaper.GetFlags(),
				Action:    wallpaper.Handle,
			},
			auto.Command(),
		},
	}

	return root.Run(ctx, args)
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

// resolveResolution turns the configured resolution into a concrete WxH,
// probing the display when set to "default".
func resolveResolution(cfg *config.Config, logger *slog.Logger) string {
	if cfg.Resolution != constants.DefaultResolution {
		return cfg.Resolution
	}
	res, err := executor.DetectResolution()
	if err != nil {
		logger.Warn("Failed to detect screen resolution, using fallback", "error", err)
		return "1920x1080"
	}
	return res
}
