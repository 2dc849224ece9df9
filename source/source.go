// Package source loads the dashboard inputs: the snapshot batch list and the
// translation table. A location is a file path, an http(s) URL or, for
// snapshots, a sqlite:// database.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/eringen/aforo/i18n"
	"github.com/eringen/aforo/occupancy"
)

// ErrUnsupportedScheme is returned for a location scheme the loader cannot
// read.
var ErrUnsupportedScheme = errors.New("source: unsupported scheme")

// SQLiteScheme prefixes a snapshot location stored in SQLite.
const SQLiteScheme = "sqlite://"

// Loader reads resources from disk or over HTTP.
type Loader struct {
	httpClient *http.Client
}

// NewLoader creates a loader whose HTTP requests time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Open returns the raw content at location. Remote failures are not retried.
func (l *Loader) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.Contains(location, "://") {
		return os.Open(location)
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse location: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return l.get(ctx, location)
	case "file":
		return os.Open(u.Path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
}

func (l *Loader) get(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %d", location, resp.StatusCode)
	}
	return resp.Body, nil
}

// Batches loads the snapshot batch list from location.
func (l *Loader) Batches(ctx context.Context, location string) ([]occupancy.Batch, error) {
	if path, ok := strings.CutPrefix(location, SQLiteScheme); ok {
		store, err := OpenSQLiteReadOnly(path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot db: %w", err)
		}
		defer store.Close()
		return store.Batches(ctx)
	}

	rc, err := l.Open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rc.Close()
	return occupancy.Decode(rc)
}

// Snapshots loads the batch list and parses it into loc. Any bad timestamp
// fails the load.
func (l *Loader) Snapshots(ctx context.Context, location string, loc *time.Location) ([]occupancy.Snapshot, error) {
	batches, err := l.Batches(ctx, location)
	if err != nil {
		return nil, err
	}
	return occupancy.Parse(batches, loc)
}

// Translations loads the i18n table from location.
func (l *Loader) Translations(ctx context.Context, location string) (i18n.Table, error) {
	rc, err := l.Open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load i18n: %w", err)
	}
	defer rc.Close()
	return i18n.Decode(rc)
}
