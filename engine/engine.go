// Package engine orchestrates wallpaper selection, application and state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"time"

	apperrors "git.sr.ht/~avern/wpcraft/errors"

	"git.sr.ht/~avern/wpcraft/config"
	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/filter"
	"git.sr.ht/~avern/wpcraft/index"
	"git.sr.ht/~avern/wpcraft/interfaces"
	"git.sr.ht/~avern/wpcraft/selector"
	"git.sr.ht/~avern/wpcraft/state"
)

// Engine wires the index, judgment store, history and collaborators
// together to answer the CLI commands.
type Engine struct {
	cfg        *config.Config
	cache      *index.Cache
	store      *state.Store
	fetcher    interfaces.Fetcher
	setter     interfaces.Setter
	scheduler  interfaces.Scheduler
	selector   *selector.Selector
	resolution string
	logger     *slog.Logger
}

// New creates an engine. The resolution is resolved by the caller (config
// value or display detection) so the engine itself never probes the system.
func New(
	cfg *config.Config,
	cache *index.Cache,
	store *state.Store,
	fetcher interfaces.Fetcher,
	setter interfaces.Setter,
	scheduler interfaces.Scheduler,
	sel *selector.Selector,
	resolution string,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		cfg:        cfg,
		cache:      cache,
		store:      store,
		fetcher:    fetcher,
		setter:     setter,
		scheduler:  scheduler,
		selector:   sel,
		resolution: resolution,
		logger:     logger,
	}
}

// Status is the read-only composition of the current engine state.
type Status struct {
	CurrentID   string
	Judgment    state.Judgment
	Tags        []string
	FilterDesc  string
	MinScore    float64
	Available   int // -1 when no index is cached yet
	SwitchCount int
	Auto        string
}

// Next picks a new wallpaper from the active candidate set, records it in
// history and applies it. With dryRun the pick is returned without touching
// history or the desktop. An ApplyError is returned after the selection is
// committed: the pick itself succeeded.
func (e *Engine) Next(ctx context.Context, dryRun bool) (index.Record, error) {
	f, err := e.cfg.Filter()
	if err != nil {
		return index.Record{}, err
	}

	records, err := e.candidates(ctx, f)
	if err != nil {
		return index.Record{}, err
	}

	currentID, _ := e.store.Current()
	pick, err := e.selector.Pick(records, f, e.store.Judgment, currentID)
	if err != nil {
		return index.Record{}, err
	}

	if dryRun {
		e.logger.Info("Selected wallpaper (dry run)", "id", pick.ID)
		return pick, nil
	}

	localPath, err := e.ensureDownloaded(ctx, pick.ID)
	if err != nil {
		return index.Record{}, err
	}

	if err := e.store.Append(pick.ID); err != nil {
		return index.Record{}, err
	}
	if err := e.store.IncrementSwitchCount(); err != nil {
		e.logger.Warn("Failed to bump switch counter", "error", err)
	}

	e.logger.Info("Switching wallpaper", "id", pick.ID, "path", localPath)
	return pick, e.setter.Apply(localPath)
}

// Prev moves back through history and re-applies that wallpaper,
// re-downloading it if the cached file was evicted. At the oldest entry it
// reports ErrAtStart.
func (e *Engine) Prev(ctx context.Context) (string, error) {
	id, err := e.store.Back()
	if err != nil {
		return "", err
	}
	return id, e.reapply(ctx, id)
}

// Forward moves forward through history after a Prev. At the newest entry
// it reports ErrAtEnd.
func (e *Engine) Forward(ctx context.Context) (string, error) {
	id, err := e.store.Forward()
	if err != nil {
		return "", err
	}
	return id, e.reapply(ctx, id)
}

func (e *Engine) reapply(ctx context.Context, id string) error {
	localPath, err := e.ensureDownloaded(ctx, id)
	if err != nil {
		return err
	}
	e.logger.Info("Switching wallpaper", "id", id, "path", localPath)
	return e.setter.Apply(localPath)
}

// SetWallpaper applies a specific wallpaper id directly, bypassing the
// selector, and records it in history.
func (e *Engine) SetWallpaper(ctx context.Context, id string, dryRun bool) error {
	localPath, err := e.ensureDownloaded(ctx, id)
	if err != nil {
		return err
	}

	if dryRun {
		e.logger.Info("Selected wallpaper (dry run)", "id", id)
		return nil
	}

	if err := e.store.Append(id); err != nil {
		return err
	}

	e.logger.Info("Switching wallpaper", "id", id, "path", localPath)
	return e.setter.Apply(localPath)
}

// Like marks the current wallpaper as liked and returns its id.
func (e *Engine) Like(ctx context.Context) (string, error) {
	return e.judge(ctx, state.Liked)
}

// Dislike marks the current wallpaper as disliked and returns its id.
func (e *Engine) Dislike(ctx context.Context) (string, error) {
	return e.judge(ctx, state.Disliked)
}

// Unlike clears any judgment on the current wallpaper and returns its id.
func (e *Engine) Unlike(ctx context.Context) (string, error) {
	id, ok := e.store.Current()
	if !ok {
		return "", apperrors.ErrNoCurrent
	}
	return id, e.store.ClearJudgment(id)
}

func (e *Engine) judge(ctx context.Context, verdict state.Judgment) (string, error) {
	id, ok := e.store.Current()
	if !ok {
		return "", apperrors.ErrNoCurrent
	}
	return id, e.store.SetJudgment(id, verdict, e.tagsFor(ctx, id))
}

// Judgment returns the stored verdict for a wallpaper id.
func (e *Engine) Judgment(id string) state.Judgment {
	return e.store.Judgment(id)
}

// Update refreshes the index for the active scope and returns the number of
// wallpapers found. For the liked and disliked scopes there is nothing to
// fetch; the judgment set size is reported instead.
func (e *Engine) Update(ctx context.Context) (int, error) {
	f, err := e.cfg.Filter()
	if err != nil {
		return 0, err
	}

	if !f.Remote() {
		return len(e.store.JudgedIDs(state.Judgment(f.Mode))), nil
	}

	idx, err := e.cache.Refresh(ctx, f.Scope(), e.fetchIndex)
	if err != nil {
		return 0, err
	}
	return len(idx.Query()), nil
}

// Count returns the candidate set size for a filter without fetching.
func (e *Engine) Count(ctx context.Context, f filter.Filter) (int, error) {
	records, err := e.candidates(ctx, f)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range records {
		if f.Matches(r, e.store.Judgment) {
			n++
		}
	}
	return n, nil
}

// Status composes the current wallpaper, its judgment, the active filter
// and the scheduler state. It never reaches the network.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	f, err := e.cfg.Filter()
	if err != nil {
		return nil, err
	}

	st := &Status{
		FilterDesc:  f.Describe(),
		MinScore:    f.MinScore,
		Available:   -1,
		SwitchCount: e.store.SwitchCount(),
	}

	if id, ok := e.store.Current(); ok {
		st.CurrentID = id
		st.Judgment = e.store.Judgment(id)
		if rec, ok := e.indexRecord(f, id); ok {
			st.Tags = rec.Tags
		} else {
			st.Tags = e.store.TagsFor(id)
		}
	}

	if !f.Remote() {
		st.Available = len(e.store.JudgedIDs(state.Judgment(f.Mode)))
	} else if idx, err := e.cache.Load(f.Scope()); err == nil {
		n := 0
		for _, r := range idx.Query() {
			if f.Matches(r, e.store.Judgment) {
				n++
			}
		}
		st.Available = n
	}

	if auto, err := e.scheduler.Status(); err == nil {
		st.Auto = auto
	} else {
		e.logger.Warn("Failed to query scheduler", "error", err)
	}

	return st, nil
}

// Liked returns all liked wallpaper ids.
func (e *Engine) Liked() []string {
	return e.store.JudgedIDs(state.Liked)
}

// Disliked returns all disliked wallpaper ids.
func (e *Engine) Disliked() []string {
	return e.store.JudgedIDs(state.Disliked)
}

// TagAffinity returns the tags the user gravitates toward: only tags with a
// strictly positive aggregate score, best first.
func (e *Engine) TagAffinity() []state.TagAffinityEntry {
	var positive []state.TagAffinityEntry
	for _, entry := range e.store.TagAffinity() {
		if entry.Score > 0 {
			positive = append(positive, entry)
		}
	}
	return positive
}

// History returns the navigable history, oldest first.
func (e *Engine) History(limit int) []state.HistoryEntry {
	return e.store.History(limit)
}

// Scheduler exposes the scheduler collaborator to the command layer.
func (e *Engine) Scheduler() interfaces.Scheduler {
	return e.scheduler
}

// candidates resolves the record collection the active filter selects from.
// Remote scopes come from the cached index; a missing cache triggers the
// one implicit refresh the freshness policy allows. Liked and disliked
// scopes are synthesized from the judgment store, so they work even for
// images no longer present in any index.
func (e *Engine) candidates(ctx context.Context, f filter.Filter) ([]index.Record, error) {
	if !f.Remote() {
		ids := e.store.JudgedIDs(state.Judgment(f.Mode))
		records := make([]index.Record, 0, len(ids))
		for _, id := range ids {
			records = append(records, index.Record{ID: id, Tags: e.store.TagsFor(id)})
		}
		return records, nil
	}

	idx, err := e.cache.Load(f.Scope())
	if errors.Is(err, apperrors.ErrNoIndex) {
		e.logger.Info("No cached index, fetching", "scope", f.Scope())
		idx, err = e.cache.Refresh(ctx, f.Scope(), e.fetchIndex)
	}
	if err != nil {
		return nil, err
	}
	return idx.Query(), nil
}

func (e *Engine) fetchIndex(ctx context.Context, scope string) ([]index.Record, error) {
	return e.fetcher.FetchIndex(ctx, scope, e.resolution)
}

// tagsFor finds a wallpaper's tags, preferring the cached index and falling
// back to the wallpaper's own page.
func (e *Engine) tagsFor(ctx context.Context, id string) []string {
	if f, err := e.cfg.Filter(); err == nil {
		if rec, ok := e.indexRecord(f, id); ok && len(rec.Tags) > 0 {
			return rec.Tags
		}
	}
	tags, err := e.fetcher.ImageTags(ctx, id)
	if err != nil {
		e.logger.Warn("Failed to fetch wallpaper tags", "id", id, "error", err)
		return nil
	}
	return tags
}

func (e *Engine) indexRecord(f filter.Filter, id string) (index.Record, bool) {
	if !f.Remote() {
		return index.Record{}, false
	}
	idx, err := e.cache.Load(f.Scope())
	if err != nil {
		return index.Record{}, false
	}
	for _, r := range idx.Query() {
		if r.ID == id {
			return r, true
		}
	}
	return index.Record{}, false
}

// ensureDownloaded returns the local image path for a wallpaper,
// downloading it first when it is not cached.
func (e *Engine) ensureDownloaded(ctx context.Context, id string) (string, error) {
	dir := filepath.Join(e.cfg.CachePath(), constants.ImageCacheDir)

	if existing, err := filepath.Glob(filepath.Join(dir, id+".*")); err == nil && len(existing) > 0 {
		return existing[0], nil
	}

	imageURL, err := e.fetcher.ImageURL(ctx, id, e.resolution)
	if err != nil {
		// The catalog 404s the download page of an id it has never seen.
		var fetchErr *apperrors.FetchError
		if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", apperrors.ErrNotFound, id)
		}
		return "", err
	}

	ext := path.Ext(imageURL)
	if ext == "" {
		ext = ".jpg"
	}
	dest := filepath.Join(dir, id+ext)

	start := time.Now()
	if err := e.fetcher.Download(ctx, imageURL, dest); err != nil {
		return "", err
	}
	e.logger.Debug("Downloaded wallpaper", "id", id, "took", time.Since(start))

	return dest, nil
}

// Describe renders a filter with the candidate availability, used by the
// use/update command output.
func Describe(f filter.Filter, count int) string {
	return fmt.Sprintf("Found %d wallpapers %s", count, f.Describe())
}
