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

// PreviousHandler handles moving back through the wallpaper history
type PreviousHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewPreviousHandler creates a new previous handler
func NewPreviousHandler(eng *engine.Engine, logger *slog.Logger) *PreviousHandler {
	return &PreviousHandler{engine: eng, logger: logger}
}

// Handle processes the prev command
func (h *PreviousHandler) Handle(ctx context.Context, c *cli.Command) error {
	id, err := h.engine.Prev(ctx)
	if errors.Is(err, apperrors.ErrAtStart) {
		// Boundary, not a failure.
		fmt.Println("Already at the oldest wallpaper in history.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Switched back to wallpaper %s\n", id)
	return nil
}

// ForwardHandler handles moving forward through the wallpaper history
type ForwardHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewForwardHandler creates a new forward handler
func NewForwardHandler(eng *engine.Engine, logger *slog.Logger) *ForwardHandler {
	return &ForwardHandler{engine: eng, logger: logger}
}

// Handle processes the forward command
func (h *ForwardHandler) Handle(ctx context.Context, c *cli.Command) error {
	id, err := h.engine.Forward(ctx)
	if errors.Is(err, apperrors.ErrAtEnd) {
		fmt.Println("Already at the newest wallpaper in history.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Switched forward to wallpaper %s\n", id)
	return nil
}
