// Package interfaces defines collaborator contracts for dependency injection
package interfaces

import (
	"context"

	"git.sr.ht/~avern/wpcraft/index"
)

// Fetcher reaches the remote wallpaper catalog.
type Fetcher interface {
	// FetchIndex gathers the full record collection for a scope like
	// "catalog/city", "tag/river" or "search/night sky".
	FetchIndex(ctx context.Context, scope, resolution string) ([]index.Record, error)

	// ImageURL resolves the direct image URL for a wallpaper at a resolution.
	ImageURL(ctx context.Context, id, resolution string) (string, error)

	// ImageTags fetches the tags shown on a wallpaper's own page.
	ImageTags(ctx context.Context, id string) ([]string, error)

	// Download saves the image at url to dest.
	Download(ctx context.Context, url, dest string) error
}

// Setter applies a local image file as the desktop wallpaper.
type Setter interface {
	Apply(path string) error
}

// Scheduler manages the periodic wallpaper switch entry.
type Scheduler interface {
	// Install replaces any existing entry with one firing every n units
	// (minutes, hours or days).
	Install(unit string, n int) error

	// Disable removes the entry.
	Disable() error

	// Status describes the installed schedule, or "" when disabled.
	Status() (string, error)
}
