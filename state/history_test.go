package state

import (
	stderrors "errors"
	"fmt"
	"testing"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/errors"
)

func TestCurrentEmptyHistory(t *testing.T) {
	store := newTestStore(t)

	if id, ok := store.Current(); ok {
		t.Errorf("Current() = %s, want no current wallpaper", id)
	}
}

func TestAppendSetsCurrent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Append("wp-1"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append("wp-2"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	id, ok := store.Current()
	if !ok || id != "wp-2" {
		t.Errorf("Current() = %s, %v, want wp-2, true", id, ok)
	}
}

func TestBackForward(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"wp-1", "wp-2", "wp-3"} {
		if err := store.Append(id); err != nil {
			t.Fatalf("Append(%s) error = %v", id, err)
		}
	}

	id, err := store.Back()
	if err != nil || id != "wp-2" {
		t.Fatalf("Back() = %s, %v, want wp-2, nil", id, err)
	}
	id, err = store.Back()
	if err != nil || id != "wp-1" {
		t.Fatalf("Back() = %s, %v, want wp-1, nil", id, err)
	}

	if _, err := store.Back(); !stderrors.Is(err, errors.ErrAtStart) {
		t.Errorf("Back() at oldest entry error = %v, want ErrAtStart", err)
	}
	if id, ok := store.Current(); !ok || id != "wp-1" {
		t.Errorf("Current() after boundary = %s, want wp-1 (cursor unmoved)", id)
	}

	id, err = store.Forward()
	if err != nil || id != "wp-2" {
		t.Fatalf("Forward() = %s, %v, want wp-2, nil", id, err)
	}
	id, err = store.Forward()
	if err != nil || id != "wp-3" {
		t.Fatalf("Forward() = %s, %v, want wp-3, nil", id, err)
	}

	if _, err := store.Forward(); !stderrors.Is(err, errors.ErrAtEnd) {
		t.Errorf("Forward() at newest entry error = %v, want ErrAtEnd", err)
	}
	if id, ok := store.Current(); !ok || id != "wp-3" {
		t.Errorf("Current() after boundary = %s, want wp-3 (cursor unmoved)", id)
	}
}

func TestBackOnEmptyHistory(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Back(); !stderrors.Is(err, errors.ErrAtStart) {
		t.Errorf("Back() on empty history error = %v, want ErrAtStart", err)
	}
	if _, err := store.Forward(); !stderrors.Is(err, errors.ErrAtEnd) {
		t.Errorf("Forward() on empty history error = %v, want ErrAtEnd", err)
	}
}

func TestAppendTruncatesForwardBranch(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"wp-1", "wp-2", "wp-3"} {
		if err := store.Append(id); err != nil {
			t.Fatalf("Append(%s) error = %v", id, err)
		}
	}
	if _, err := store.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}
	if _, err := store.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}

	// Appending from the middle discards wp-2 and wp-3.
	if err := store.Append("wp-4"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if _, err := store.Forward(); !stderrors.Is(err, errors.ErrAtEnd) {
		t.Errorf("Forward() after branch truncation error = %v, want ErrAtEnd", err)
	}

	entries := store.History(0)
	if len(entries) != 2 {
		t.Fatalf("History() returned %d entries, want 2", len(entries))
	}
	if entries[0].ID != "wp-1" || entries[1].ID != "wp-4" {
		t.Errorf("History() = [%s %s], want [wp-1 wp-4]", entries[0].ID, entries[1].ID)
	}
	if !entries[1].Current {
		t.Errorf("History() newest entry not flagged current")
	}
}

func TestHistoryTrimsOldestBeyondCap(t *testing.T) {
	store := newTestStore(t)

	total := constants.MaxHistorySize + 10
	for i := range total {
		if err := store.Append(fmt.Sprintf("wp-%03d", i)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	entries := store.History(total)
	if len(entries) != constants.MaxHistorySize {
		t.Fatalf("History() returned %d entries, want %d", len(entries), constants.MaxHistorySize)
	}
	if got, want := entries[0].ID, fmt.Sprintf("wp-%03d", 10); got != want {
		t.Errorf("History() oldest = %s, want %s", got, want)
	}

	id, ok := store.Current()
	if !ok || id != fmt.Sprintf("wp-%03d", total-1) {
		t.Errorf("Current() = %s, want newest entry after trim", id)
	}
}

func TestSwitchCount(t *testing.T) {
	store := newTestStore(t)

	if got := store.SwitchCount(); got != 0 {
		t.Errorf("SwitchCount() = %d, want 0", got)
	}
	for range 3 {
		if err := store.IncrementSwitchCount(); err != nil {
			t.Fatalf("IncrementSwitchCount() error = %v", err)
		}
	}
	if got := store.SwitchCount(); got != 3 {
		t.Errorf("SwitchCount() = %d, want 3", got)
	}
}

func TestSwitchCountSurvivesHistoryNavigation(t *testing.T) {
	store := newTestStore(t)

	if err := store.Append("wp-1"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.IncrementSwitchCount(); err != nil {
		t.Fatalf("IncrementSwitchCount() error = %v", err)
	}
	if err := store.Append("wp-2"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.IncrementSwitchCount(); err != nil {
		t.Fatalf("IncrementSwitchCount() error = %v", err)
	}
	if _, err := store.Back(); err != nil {
		t.Fatalf("Back() error = %v", err)
	}

	if got := store.SwitchCount(); got != 2 {
		t.Errorf("SwitchCount() = %d, want 2", got)
	}
}
