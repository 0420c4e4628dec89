package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/config"
	"git.sr.ht/~avern/wpcraft/engine"
	"git.sr.ht/~avern/wpcraft/filter"
)

// UseHandler switches the active selection mode
type UseHandler struct {
	engine  *engine.Engine
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
}

// NewUseHandler creates a new use handler
func NewUseHandler(eng *engine.Engine, cfg *config.Config, cfgPath string, logger *slog.Logger) *UseHandler {
	return &UseHandler{engine: eng, cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Command returns the use command tree
func (h *UseHandler) Command() *cli.Command {
	withArg := func(mode filter.Mode, usage string) *cli.Command {
		return &cli.Command{
			Name:      string(mode),
			Usage:     usage,
			ArgsUsage: "<" + string(mode) + ">",
			Action: func(ctx context.Context, c *cli.Command) error {
				arg := strings.TrimSpace(c.Args().First())
				if arg == "" {
					return fmt.Errorf("missing %s argument", mode)
				}
				return h.set(ctx, filter.Filter{Mode: mode, Value: strings.ToLower(arg)})
			},
		}
	}
	withoutArg := func(mode filter.Mode, usage string) *cli.Command {
		return &cli.Command{
			Name:  string(mode),
			Usage: usage,
			Action: func(ctx context.Context, c *cli.Command) error {
				return h.set(ctx, filter.Filter{Mode: mode})
			},
		}
	}

	return &cli.Command{
		Name:  "use",
		Usage: "Select which wallpapers to use",
		Commands: []*cli.Command{
			withArg(filter.ByCatalog, "Wallpaper catalog to choose from"),
			withArg(filter.ByTag, "Wallpaper tag to choose from"),
			withArg(filter.BySearch, "Search query to pick wallpapers from"),
			withoutArg(filter.ByLiked, "Use wallpapers marked as liked"),
			withoutArg(filter.ByDisliked, "Use wallpapers marked as disliked"),
		},
	}
}

// set atomically replaces the selection mode and reports the resulting
// candidate count. The new filter takes effect on the next pick; the
// current wallpaper is left alone.
func (h *UseHandler) set(ctx context.Context, f filter.Filter) error {
	h.cfg.SetFilter(f)
	if err := h.cfg.Save(h.cfgPath); err != nil {
		return err
	}

	f.MinScore = h.cfg.MinScore
	count, err := h.engine.Count(ctx, f)
	if err != nil {
		return err
	}

	fmt.Println(engine.Describe(f, count))
	return nil
}
