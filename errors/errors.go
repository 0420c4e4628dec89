// Package errors defines custom error types for wpcraft
package errors

import (
	"errors"
	"fmt"
)

// Application error types
var (
	ErrNoCandidates = errors.New("no wallpapers match the active filter")
	ErrAtStart      = errors.New("already at the oldest wallpaper in history")
	ErrAtEnd        = errors.New("already at the newest wallpaper in history")
	ErrNoCurrent    = errors.New("no wallpaper has been set yet")
	ErrNoIndex      = errors.New("no cached wallpaper index")
	ErrNotFound     = errors.New("wallpaper not found")
	ErrCronAccess   = errors.New("failed to access user crontab")
)

// FetchError represents a failure reaching the remote catalog
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch failed for %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch failed for %s: %v", e.URL, e.Err)
}

func (e FetchError) Unwrap() error {
	return e.Err
}

// ApplyError represents a failure of the desktop wallpaper-setting call
type ApplyError struct {
	Path string
	Err  error
}

func (e ApplyError) Error() string {
	return fmt.Sprintf("failed to apply wallpaper %s: %v", e.Path, e.Err)
}

func (e ApplyError) Unwrap() error {
	return e.Err
}

// CorruptStateError represents an unreadable persisted state file. The
// state is never silently replaced; the user has to remove the file.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e CorruptStateError) Error() string {
	return fmt.Sprintf(
		"state database %s is unreadable (%v); refusing to reset it automatically, remove the file to start fresh",
		e.Path, e.Err)
}

func (e CorruptStateError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new fetch error
func NewFetchError(url string, statusCode int, err error) error {
	return &FetchError{URL: url, StatusCode: statusCode, Err: err}
}

// NewApplyError creates a new apply error
func NewApplyError(path string, err error) error {
	return &ApplyError{Path: path, Err: err}
}

// NewCorruptStateError creates a new corrupt state error
func NewCorruptStateError(path string, err error) error {
	return &CorruptStateError{Path: path, Err: err}
}
