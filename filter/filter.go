// Package filter describes which wallpapers are eligible for selection.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/index"
	"git.sr.ht/~avern/wpcraft/state"
)

// Mode is the active selection mode.
type Mode string

// Selection modes
const (
	ByCatalog  Mode = constants.ScopeCatalog
	ByTag      Mode = constants.ScopeTag
	BySearch   Mode = constants.ScopeSearch
	ByLiked    Mode = constants.ScopeLiked
	ByDisliked Mode = constants.ScopeDisliked
)

// JudgmentFunc looks up the stored judgment for a wallpaper id.
type JudgmentFunc func(id string) state.Judgment

// Filter is the immutable active selection filter: exactly one mode plus an
// optional minimum score. A zero MinScore means no threshold.
type Filter struct {
	Mode     Mode
	Value    string
	MinScore float64
}

// Parse parses a persisted scope string like "catalog/city", "tag/river",
// "search/night sky", "liked" or "disliked".
func Parse(scope string) (Filter, error) {
	kind, value, _ := strings.Cut(scope, "/")
	switch Mode(kind) {
	case ByCatalog, ByTag, BySearch:
		if value == "" {
			return Filter{}, fmt.Errorf("scope %q is missing a value", scope)
		}
		return Filter{Mode: Mode(kind), Value: strings.ToLower(value)}, nil
	case ByLiked, ByDisliked:
		return Filter{Mode: Mode(kind)}, nil
	}
	return Filter{}, fmt.Errorf("invalid scope %q", scope)
}

// Scope returns the persistable scope string.
func (f Filter) Scope() string {
	if f.Value == "" {
		return string(f.Mode)
	}
	return string(f.Mode) + "/" + f.Value
}

// Remote reports whether this mode selects from a remotely fetched index.
// Liked and disliked sets come from the judgment store instead.
func (f Filter) Remote() bool {
	switch f.Mode {
	case ByLiked, ByDisliked:
		return false
	}
	return true
}

// Describe renders the filter for status messages.
func (f Filter) Describe() string {
	switch f.Mode {
	case ByCatalog:
		return fmt.Sprintf("from catalog '%s'", f.Value)
	case ByTag:
		return fmt.Sprintf("with tag '%s'", f.Value)
	case BySearch:
		return fmt.Sprintf("in search results for '%s'", f.Value)
	case ByLiked:
		return "marked as liked"
	case ByDisliked:
		return "marked as disliked"
	}
	return string(f.Mode)
}

// Matches reports whether a record passes the mode predicate and, when a
// threshold is set, the minimum score.
func (f Filter) Matches(r index.Record, judge JudgmentFunc) bool {
	if f.MinScore > 0 && r.Score < f.MinScore {
		return false
	}

	switch f.Mode {
	case ByCatalog:
		return strings.EqualFold(r.Catalog, f.Value)
	case ByTag:
		return slices.ContainsFunc(r.Tags, func(t string) bool {
			return strings.EqualFold(t, f.Value)
		})
	case BySearch:
		// Search results are cached as a pseudo-catalog keyed by the term;
		// membership in that index is the match.
		return true
	case ByLiked:
		return judge(r.ID) == state.Liked
	case ByDisliked:
		return judge(r.ID) == state.Disliked
	}
	return false
}
