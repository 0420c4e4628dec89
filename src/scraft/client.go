// Package scraft provides access to the wallpaperscraft.com catalog
package scraft

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"git.sr.ht/~avern/wpcraft/constants"
	"git.sr.ht/~avern/wpcraft/errors"
	"git.sr.ht/~avern/wpcraft/index"
)

const baseURL = "https://wallpaperscraft.com"

// Client scrapes wallpaperscraft.com. It implements interfaces.Fetcher.
type Client struct {
	http   *http.Client
	logger *slog.Logger

	// fetchPool limits concurrent listing page fetches
	fetchPool chan struct{}
}

// NewClient creates a catalog client.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: constants.RequestTimeout * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        constants.MaxIdleConns,
				MaxIdleConnsPerHost: constants.MaxIdleConnsPerHost,
				IdleConnTimeout:     constants.IdleConnTimeout * time.Second,
			},
		},
		logger:    logger,
		fetchPool: make(chan struct{}, constants.FetchWorkers),
	}
}

// FetchIndex gathers every listing page of a scope and returns the
// de-duplicated record collection, ordered by id.
func (c *Client) FetchIndex(ctx context.Context, scope, resolution string) ([]index.Record, error) {
	first, err := c.get(ctx, scopeURL(scope, resolution, 0))
	if err != nil {
		return nil, err
	}

	doc, err := io.ReadAll(first.Body)
	first.Body.Close()
	if err != nil {
		return nil, errors.NewFetchError(scopeURL(scope, resolution, 0), 0, err)
	}

	catalog := scopeCatalog(scope)
	records, err := parseListing(strings.NewReader(string(doc)), catalog)
	if err != nil {
		return nil, errors.NewFetchError(scopeURL(scope, resolution, 0), 0, err)
	}
	pages, err := parsePageCount(strings.NewReader(string(doc)))
	if err != nil {
		pages = 1
	}

	c.logger.Info("Gathering wallpaper list", "scope", scope, "pages", pages)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for n := 1; n < pages; n++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()

			select {
			case c.fetchPool <- struct{}{}:
				defer func() { <-c.fetchPool }()
			case <-ctx.Done():
				return
			}

			resp, err := c.get(ctx, scopeURL(scope, resolution, page))
			if err != nil {
				// Missing trailing pages are tolerated; the rest of the
				// index is still useful.
				c.logger.Warn("Skipping listing page", "page", page, "error", err)
				return
			}
			defer resp.Body.Close()

			pageRecords, err := parseListing(resp.Body, catalog)
			if err != nil {
				c.logger.Warn("Failed to parse listing page", "page", page, "error", err)
				return
			}

			mu.Lock()
			records = append(records, pageRecords...)
			mu.Unlock()
		}(n)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	unique := records[:0]
	for _, r := range records {
		if !seen[r.ID] {
			seen[r.ID] = true
			unique = append(unique, r)
		}
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].ID < unique[j].ID })

	return unique, nil
}

// ImageURL resolves the direct image URL for a wallpaper at a resolution.
func (c *Client) ImageURL(ctx context.Context, id, resolution string) (string, error) {
	pageURL := fmt.Sprintf("%s/download/%s/%s", baseURL, id, resolution)
	resp, err := c.get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	imageURL, err := parseImageURL(resp.Body)
	if err != nil {
		return "", errors.NewFetchError(pageURL, 0, err)
	}
	return imageURL, nil
}

// ImageTags fetches the tags from a wallpaper's own page.
func (c *Client) ImageTags(ctx context.Context, id string) ([]string, error) {
	pageURL := fmt.Sprintf("%s/wallpaper/%s", baseURL, id)
	resp, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseWallpaperTags(resp.Body)
}

// Download saves the image at url to dest, writing through a temp file so a
// partial download is never observable at the final path.
func (c *Client) Download(ctx context.Context, imageURL, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	resp, err := c.get(ctx, imageURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewFetchError(imageURL, 0, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to place downloaded image: %w", err)
	}

	c.logger.Info("Download completed", "dest", dest, "bytes_written", written)
	return nil
}

// get issues a GET with bounded retries on transport errors and 5xx.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", constants.UserAgent)

	for attempt := 0; attempt < constants.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("Retrying request", "attempt", attempt+1, "url", rawURL)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(constants.RetryDelaySeconds * time.Second * time.Duration(attempt)):
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == constants.MaxRetries-1 {
				return nil, errors.NewFetchError(rawURL, 0, err)
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}
		resp.Body.Close()

		if resp.StatusCode >= 500 && attempt < constants.MaxRetries-1 {
			c.logger.Debug("Server error, retrying", "status_code", resp.StatusCode)
			continue
		}
		return nil, errors.NewFetchError(rawURL, resp.StatusCode, nil)
	}

	return nil, errors.NewFetchError(rawURL, 0, fmt.Errorf("max retries exceeded"))
}

// scopeURL builds the listing URL for a scope. Page 0 is the unsuffixed
// first page, matching the site's pager.
func scopeURL(scope, resolution string, page int) string {
	kind, value, _ := strings.Cut(scope, "/")
	switch kind {
	case constants.ScopeCatalog, constants.ScopeTag:
		u := fmt.Sprintf("%s/%s/%s/%s", baseURL, kind, value, resolution)
		if page > 0 {
			u += fmt.Sprintf("/page%d", page+1)
		}
		return u
	case constants.ScopeSearch:
		u := fmt.Sprintf("%s/search/?query=%s&size=%s", baseURL, url.QueryEscape(value), resolution)
		if page > 0 {
			u += fmt.Sprintf("&page=%d", page+1)
		}
		return u
	}
	return baseURL
}

func scopeCatalog(scope string) string {
	kind, value, _ := strings.Cut(scope, "/")
	if kind == constants.ScopeCatalog {
		return value
	}
	return ""
}
