package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/engine"
	apperrors "git.sr.ht/~avern/wpcraft/errors"
)

// NextHandler handles the next wallpaper command
type NextHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewNextHandler creates a new next handler
func NewNextHandler(eng *engine.Engine, logger *slog.Logger) *NextHandler {
	return &NextHandler{engine: eng, logger: logger}
}

// Handle processes the next command
func (h *NextHandler) Handle(ctx context.Context, c *cli.Command) error {
	dryRun := c.Bool("dry-run")

	pick, err := h.engine.Next(ctx, dryRun)
	if errors.Is(err, apperrors.ErrNoCandidates) {
		return fmt.Errorf("%w; try a broader filter with 'use' or a lower 'min_score'", err)
	}
	if err != nil {
		var applyErr *apperrors.ApplyError
		if errors.As(err, &applyErr) {
			// The selection is already recorded; only the desktop call failed.
			fmt.Printf("Switched to wallpaper %s\n", pick.ID)
		}
		return err
	}

	if dryRun {
		fmt.Printf("Would switch to wallpaper %s (dry run)\n", pick.ID)
		return nil
	}

	fmt.Printf("Switched to wallpaper %s\n", pick.ID)
	return nil
}

// GetFlags returns the CLI flags for the next command
func (h *NextHandler) GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "Pick a wallpaper without changing anything",
		},
	}
}
