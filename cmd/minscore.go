package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/config"
	"git.sr.ht/~avern/wpcraft/engine"
	"git.sr.ht/~avern/wpcraft/validator"
)

// MinScoreHandler sets the minimum score threshold
type MinScoreHandler struct {
	engine  *engine.Engine
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
}

// NewMinScoreHandler creates a new min_score handler
func NewMinScoreHandler(eng *engine.Engine, cfg *config.Config, cfgPath string, logger *slog.Logger) *MinScoreHandler {
	return &MinScoreHandler{engine: eng, cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Handle processes the min_score command
func (h *MinScoreHandler) Handle(ctx context.Context, c *cli.Command) error {
	arg := c.Args().First()
	if arg == "" {
		return fmt.Errorf("missing score argument")
	}

	score, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", arg, err)
	}
	if err := validator.ValidateMinScore(score); err != nil {
		return err
	}

	h.cfg.MinScore = score
	if err := h.cfg.Save(h.cfgPath); err != nil {
		return err
	}

	if score == 0 {
		fmt.Println("Minimum score cleared.")
	} else {
		fmt.Printf("Only selecting wallpapers with score %g or higher.\n", score)
	}
	return nil
}
