package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/engine"
	"git.sr.ht/~avern/wpcraft/state"
)

// StatusHandler handles the status command
type StatusHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(eng *engine.Engine, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{engine: eng, logger: logger}
}

// Handle processes the status command
func (h *StatusHandler) Handle(ctx context.Context, c *cli.Command) error {
	st, err := h.engine.Status(ctx)
	if err != nil {
		return err
	}

	if st.CurrentID == "" {
		fmt.Println("No wallpaper has been set yet. Run 'next' to pick one.")
	} else {
		fmt.Printf("Current wallpaper: %s\n", color.New(color.Bold).Sprint(st.CurrentID))
		switch st.Judgment {
		case state.Liked:
			color.Green("You like this wallpaper.")
		case state.Disliked:
			color.Red("You dislike this wallpaper.")
		}
		if len(st.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(st.Tags, ", "))
		}
	}

	if st.Available >= 0 {
		fmt.Printf("Using images %s, %d wallpapers available.\n", st.FilterDesc, st.Available)
	} else {
		fmt.Printf("Using images %s, no cached index yet (run 'update').\n", st.FilterDesc)
	}
	if st.MinScore > 0 {
		fmt.Printf("Minimum score: %g\n", st.MinScore)
	}
	if st.SwitchCount > 0 {
		fmt.Printf("Wallpapers switched so far: %d\n", st.SwitchCount)
	}
	if st.Auto != "" {
		fmt.Printf("Automatically switching %s.\n", st.Auto)
	}

	return nil
}
