package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/engine"
	"git.sr.ht/~avern/wpcraft/validator"
)

// AutoHandler manages the periodic wallpaper switch schedule
type AutoHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewAutoHandler creates a new auto handler
func NewAutoHandler(eng *engine.Engine, logger *slog.Logger) *AutoHandler {
	return &AutoHandler{engine: eng, logger: logger}
}

// Command returns the auto command tree
func (h *AutoHandler) Command() *cli.Command {
	interval := func(unit string) *cli.Command {
		return &cli.Command{
			Name:      unit,
			Usage:     fmt.Sprintf("Switch to the next wallpaper every N %s", unit),
			ArgsUsage: "<N>",
			Action: func(ctx context.Context, c *cli.Command) error {
				return h.install(unit, c.Args().First())
			},
		}
	}

	return &cli.Command{
		Name:  "auto",
		Usage: "Automatically switch wallpapers on a schedule",
		Commands: []*cli.Command{
			interval("minutes"),
			interval("hours"),
			interval("days"),
			{
				Name:   "disable",
				Usage:  "Disable automatic wallpaper switching",
				Action: h.handleDisable,
			},
		},
	}
}

func (h *AutoHandler) install(unit, arg string) error {
	if arg == "" {
		return fmt.Errorf("missing interval argument")
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", arg, err)
	}
	if err := validator.ValidateUnit(unit); err != nil {
		return err
	}
	if err := validator.ValidateInterval(n); err != nil {
		return err
	}

	if err := h.engine.Scheduler().Install(unit, n); err != nil {
		return err
	}
	fmt.Printf("Automatically switching wallpaper every %d %s.\n", n, unit)
	return nil
}

func (h *AutoHandler) handleDisable(ctx context.Context, c *cli.Command) error {
	if err := h.engine.Scheduler().Disable(); err != nil {
		return err
	}
	fmt.Println("Automatic wallpaper switching disabled.")
	return nil
}
