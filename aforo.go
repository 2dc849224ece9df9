// Package aforo serves the venue occupancy dashboard: it loads the snapshot
// and translation resources once, keeps them in a DataCache, and renders the
// dashboard server-side on every request from the filter state in the URL.
package aforo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/aforo/dashboard"
	"github.com/eringen/aforo/source"
	"github.com/eringen/aforo/views"
)

// App wires together the config, data cache, handlers and middleware.
type App struct {
	Config   *Config
	Echo     *echo.Echo
	Data     *DataCache
	Site     views.SiteConfig
	Location *time.Location
	Options  dashboard.Options

	loginLimiter *LoginLimiter
	stopRefresh  func()
	now          func() time.Time
}

// Option configures additional App behavior.
type Option func(*App)

// WithLoader replaces the source-backed loader.
func WithLoader(load LoadFunc) Option {
	return func(a *App) {
		a.Data = NewDataCache(load)
	}
}

// WithClock sets the time source used for the evolution window.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// New validates cfg and builds the app with its middleware and routes. No
// data is loaded until Load or Start.
func New(cfg *Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("aforo: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Data.Location)
	if err != nil {
		return nil, fmt.Errorf("aforo: %w", err)
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Site: views.SiteConfig{
			Name:        cfg.Server.Name,
			URL:         cfg.Server.URL,
			Description: cfg.Server.Description,
		},
		Location: loc,
		Options:  cfg.DashboardOptions(),
		now:      time.Now,
	}
	a.Data = NewDataCache(SourceLoader(source.NewLoader(cfg.Data.Timeout), cfg.Data.Stats, cfg.Data.I18n, loc))

	for _, opt := range opts {
		opt(a)
	}

	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(logLevel(cfg.Logging.Level))

	if cfg.Admin.Enabled() {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// Load performs the initial load of both resources. Failure is fatal for
// serving: there is no meaningful dashboard without both.
func (a *App) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*a.Config.Data.Timeout)
	defer cancel()
	if err := a.Data.Reload(ctx); err != nil {
		return fmt.Errorf("aforo: initial load: %w", err)
	}
	return nil
}

// Start loads the data, starts the optional refresh loop and serves until
// the server is shut down.
func (a *App) Start() error {
	if err := a.Load(context.Background()); err != nil {
		return err
	}
	ds, _ := a.Data.Get()
	a.Echo.Logger.Infof("loaded %d snapshots, %d languages", len(ds.Snapshots), len(ds.I18n))

	if every := a.Config.Data.RefreshInterval; every > 0 {
		a.stopRefresh = a.Data.StartRefresh(every, 2*a.Config.Data.Timeout, func(err error) {
			a.Echo.Logger.Errorf("refresh failed, keeping previous data: %v", err)
		})
	}

	if err := a.Echo.Start(a.Config.Server.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close stops background work. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopRefresh != nil {
		a.stopRefresh()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.StaticFS("/public", echo.MustSubFS(staticAssets, "static"))

	e.GET("/", a.handleDashboard)
	e.GET("/api/summary", a.handleSummary)
	e.GET("/og.png", a.handleOGImage)
	e.GET("/healthz", a.handleHealth)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/robots.txt", a.handleRobots)

	if a.Config.Admin.Enabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.POST("/admin/reload/", a.handleAdminReload)
	}
}
