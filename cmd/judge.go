package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/engine"
)

// JudgeHandler handles the like, dislike and unlike commands
type JudgeHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewJudgeHandler creates a new judge handler
func NewJudgeHandler(eng *engine.Engine, logger *slog.Logger) *JudgeHandler {
	return &JudgeHandler{engine: eng, logger: logger}
}

// HandleLike marks the current wallpaper as liked
func (h *JudgeHandler) HandleLike(ctx context.Context, c *cli.Command) error {
	id, err := h.engine.Like(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Marked wallpaper %s as liked.\n", id)
	return nil
}

// HandleDislike marks the current wallpaper as disliked
func (h *JudgeHandler) HandleDislike(ctx context.Context, c *cli.Command) error {
	id, err := h.engine.Dislike(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Marked wallpaper %s as disliked.\n", id)
	fmt.Println("Use 'next' to switch to a different wallpaper.")
	return nil
}

// HandleUnlike clears the judgment on the current wallpaper
func (h *JudgeHandler) HandleUnlike(ctx context.Context, c *cli.Command) error {
	id, err := h.engine.Unlike(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Removed like/dislike mark from wallpaper %s.\n", id)
	return nil
}
