package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/engine"
)

// UpdateHandler handles the index refresh command
type UpdateHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(eng *engine.Engine, logger *slog.Logger) *UpdateHandler {
	return &UpdateHandler{engine: eng, logger: logger}
}

// Handle processes the update command
func (h *UpdateHandler) Handle(ctx context.Context, c *cli.Command) error {
	count, err := h.engine.Update(ctx)
	if err != nil {
		return err
	}

	st, err := h.engine.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d wallpapers %s.\n", count, st.FilterDesc)
	return nil
}
