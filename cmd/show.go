package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"git.sr.ht/~avern/wpcraft/engine"
)

// ShowHandler handles the read-only show queries
type ShowHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewShowHandler creates a new show handler
func NewShowHandler(eng *engine.Engine, logger *slog.Logger) *ShowHandler {
	return &ShowHandler{engine: eng, logger: logger}
}

// Command returns the show command tree
func (h *ShowHandler) Command() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Display liked/disliked wallpapers, tag statistics and history",
		Commands: []*cli.Command{
			{
				Name:   "liked",
				Usage:  "Show the list of liked wallpapers",
				Action: h.handleLiked,
			},
			{
				Name:   "disliked",
				Usage:  "Show the list of disliked wallpapers",
				Action: h.handleDisliked,
			},
			{
				Name:   "tags",
				Usage:  "Show the tags you like, best first",
				Action: h.handleTags,
			},
			{
				Name:   "history",
				Usage:  "Show previously used wallpapers",
				Action: h.handleHistory,
			},
		},
	}
}

func (h *ShowHandler) handleLiked(ctx context.Context, c *cli.Command) error {
	ids := h.engine.Liked()
	if len(ids) == 0 {
		fmt.Println("No liked wallpapers.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func (h *ShowHandler) handleDisliked(ctx context.Context, c *cli.Command) error {
	ids := h.engine.Disliked()
	if len(ids) == 0 {
		fmt.Println("No disliked wallpapers.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func (h *ShowHandler) handleTags(ctx context.Context, c *cli.Command) error {
	entries := h.engine.TagAffinity()
	if len(entries) == 0 {
		fmt.Println("No tag statistics yet. Like some wallpapers first!")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s %d\n", color.New(color.FgCyan).Sprint(e.Tag), e.Score)
	}
	return nil
}

func (h *ShowHandler) handleHistory(ctx context.Context, c *cli.Command) error {
	entries := h.engine.History(0)
	if len(entries) == 0 {
		fmt.Println("No wallpaper history yet.")
		return nil
	}
	for _, e := range entries {
		marker := "  "
		if e.Current {
			marker = color.New(color.FgGreen).Sprint("> ")
		}
		fmt.Printf("%s%s  %s\n", marker, e.SetAt.Format("2006-01-02 15:04"), e.ID)
	}
	return nil
}
