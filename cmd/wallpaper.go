package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/engine"
)

// WallpaperHandler sets a specific wallpaper by id, bypassing the selector
type WallpaperHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewWallpaperHandler creates a new wallpaper handler
func NewWallpaperHandler(eng *engine.Engine, logger *slog.Logger) *WallpaperHandler {
	return &WallpaperHandler{engine: eng, logger: logger}
}

// Handle processes the wallpaper command
func (h *WallpaperHandler) Handle(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("missing wallpaper id")
	}

	dryRun := c.Bool("dry-run")
	if err := h.engine.SetWallpaper(ctx, id, dryRun); err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Would switch to wallpaper %s (dry run)\n", id)
		return nil
	}
	fmt.Printf("Switched to wallpaper %s\n", id)
	return nil
}

// GetFlags returns the CLI flags for the wallpaper command
func (h *WallpaperHandler) GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "Resolve and download the wallpaper without applying it",
		},
	}
}
