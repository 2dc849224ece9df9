package aforo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/eringen/aforo/dashboard"
	"github.com/eringen/aforo/i18n"
	"github.com/eringen/aforo/occupancy"
	"github.com/eringen/aforo/source"
)

// ErrNotLoaded is returned by DataCache.Get before the first successful load.
var ErrNotLoaded = errors.New("aforo: data not loaded")

// Dataset is one immutable load of both resources.
type Dataset struct {
	Snapshots []occupancy.Snapshot
	I18n      i18n.Table
	LoadedAt  time.Time
}

// Data returns the render pass input.
func (d *Dataset) Data() dashboard.Data {
	return dashboard.Data{Snapshots: d.Snapshots, I18n: d.I18n}
}

// LoadFunc produces a fresh Dataset.
type LoadFunc func(ctx context.Context) (*Dataset, error)

// SourceLoader loads snapshots and then translations, sequentially, from the
// configured locations.
func SourceLoader(l *source.Loader, stats, i18nLocation string, loc *time.Location) LoadFunc {
	return func(ctx context.Context) (*Dataset, error) {
		snaps, err := l.Snapshots(ctx, stats, loc)
		if err != nil {
			return nil, fmt.Errorf("snapshots: %w", err)
		}
		table, err := l.Translations(ctx, i18nLocation)
		if err != nil {
			return nil, fmt.Errorf("i18n: %w", err)
		}
		return &Dataset{Snapshots: snaps, I18n: table, LoadedAt: time.Now()}, nil
	}
}

// DataCache holds the current Dataset. Readers share it under a read lock;
// a reload swaps it in whole, and a failed reload keeps the previous one.
type DataCache struct {
	mu      sync.RWMutex
	data    *Dataset
	lastErr error
	load    LoadFunc
}

// NewDataCache creates an empty cache backed by load.
func NewDataCache(load LoadFunc) *DataCache {
	return &DataCache{load: load}
}

// Reload runs the loader and replaces the dataset on success.
func (c *DataCache) Reload(ctx context.Context) error {
	data, err := c.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	if err != nil {
		return err
	}
	c.data = data
	return nil
}

// Get returns the current dataset.
func (c *DataCache) Get() (*Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return nil, ErrNotLoaded
	}
	return c.data, nil
}

// LastError is the error of the most recent reload, nil if it succeeded.
func (c *DataCache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// StartRefresh reloads every interval until the returned stop function is
// called. Failures are passed to onError. Stop waits for an in-flight
// reload to finish.
func (c *DataCache) StartRefresh(interval time.Duration, timeout time.Duration, onError func(error)) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				if err := c.Reload(ctx); err != nil && onError != nil {
					onError(err)
				}
				cancel()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-stopped
	}
}
