package aforo

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eringen/aforo/dashboard"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	Admin     AdminConfig       `mapstructure:"admin"`
	Data      DataConfig        `mapstructure:"data"`
	Dashboard DashboardConfig   `mapstructure:"dashboard"`
	Venues    []dashboard.Venue `mapstructure:"venues"`
	Logging   LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener and site identity.
type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	URL          string `mapstructure:"url"`
	Name         string `mapstructure:"name"`
	Description  string `mapstructure:"description"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

// AdminConfig enables the admin screen when Password is set.
type AdminConfig struct {
	Password      string `mapstructure:"password"`
	SessionSecret string `mapstructure:"session_secret"`
}

// Enabled reports whether the admin routes are mounted.
func (a AdminConfig) Enabled() bool {
	return a.Password != ""
}

// DataConfig says where the snapshot and translation resources live.
type DataConfig struct {
	Stats           string        `mapstructure:"stats"`
	I18n            string        `mapstructure:"i18n"`
	Location        string        `mapstructure:"location"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// DashboardConfig holds the filter defaults.
type DashboardConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
	DefaultVenue    int    `mapstructure:"default_venue"`
	Windows         []int  `mapstructure:"windows"`
	ChartWidth      int    `mapstructure:"chart_width"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from an optional YAML file and AFORO_*
// environment variables, e.g. AFORO_DATA_STATS for data.stats.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AFORO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration Load produces with no file and no
// environment.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.url", "http://localhost:3000")
	v.SetDefault("server.name", "Aforo")
	v.SetDefault("server.description", "")
	v.SetDefault("server.cookie_secure", false)

	// Admin defaults
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.session_secret", "")

	// Data defaults
	v.SetDefault("data.stats", "data/stats.json")
	v.SetDefault("data.i18n", "data/i18n.json")
	v.SetDefault("data.location", "Europe/Madrid")
	v.SetDefault("data.timeout", "30s")
	v.SetDefault("data.refresh_interval", "0s")

	// Dashboard defaults
	defaults := dashboard.DefaultOptions()
	v.SetDefault("dashboard.default_language", defaults.DefaultLanguage)
	v.SetDefault("dashboard.default_venue", defaults.DefaultVenue)
	v.SetDefault("dashboard.windows", defaults.Windows)
	v.SetDefault("dashboard.chart_width", defaults.ChartWidth)

	venues := make([]map[string]interface{}, len(defaults.Venues))
	for i, venue := range defaults.Venues {
		venues[i] = map[string]interface{}{"id": venue.ID, "name": venue.Name}
	}
	v.SetDefault("venues", venues)

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Admin.Enabled() && c.Admin.SessionSecret == "" {
		return fmt.Errorf("admin.session_secret is required when admin.password is set")
	}

	if c.Data.Stats == "" {
		return fmt.Errorf("data.stats is required")
	}
	if c.Data.I18n == "" {
		return fmt.Errorf("data.i18n is required")
	}
	if _, err := time.LoadLocation(c.Data.Location); err != nil {
		return fmt.Errorf("data.location: %w", err)
	}
	if c.Data.Timeout < time.Second {
		return fmt.Errorf("data.timeout must be at least 1 second")
	}
	if c.Data.RefreshInterval != 0 && c.Data.RefreshInterval < 10*time.Second {
		return fmt.Errorf("data.refresh_interval must be 0 or at least 10 seconds")
	}

	if len(c.Venues) == 0 {
		return fmt.Errorf("venues must contain at least one venue")
	}
	seen := make(map[int]bool, len(c.Venues))
	for _, venue := range c.Venues {
		if seen[venue.ID] {
			return fmt.Errorf("venues: duplicate id %d", venue.ID)
		}
		seen[venue.ID] = true
	}
	if !seen[c.Dashboard.DefaultVenue] {
		return fmt.Errorf("dashboard.default_venue %d is not a configured venue", c.Dashboard.DefaultVenue)
	}
	if len(c.Dashboard.Windows) == 0 {
		return fmt.Errorf("dashboard.windows must contain at least one window")
	}
	for _, w := range c.Dashboard.Windows {
		if w < 1 {
			return fmt.Errorf("dashboard.windows must be positive day counts")
		}
	}
	if c.Dashboard.ChartWidth < 200 {
		return fmt.Errorf("dashboard.chart_width must be at least 200")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	return nil
}

// DashboardOptions converts the config into the filter controller options.
func (c *Config) DashboardOptions() dashboard.Options {
	return dashboard.Options{
		DefaultLanguage: c.Dashboard.DefaultLanguage,
		DefaultVenue:    c.Dashboard.DefaultVenue,
		Venues:          c.Venues,
		Windows:         c.Dashboard.Windows,
		ChartWidth:      c.Dashboard.ChartWidth,
	}
}
