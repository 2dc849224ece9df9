package views

import "time"

// SiteConfig holds site-wide settings. Every page receives it so nothing is
// hardcoded in the templates.
type SiteConfig struct {
	Name        string // shown in <title> when the i18n title is empty
	URL         string // canonical base URL, used for og:url and og:image
	Description string
}

// PageMeta carries per-page OpenGraph metadata into <head>.
type PageMeta struct {
	Lang        string
	Title       string
	Description string
	URL         string
}

// AdminStatus is what the admin screen shows about the loaded data.
type AdminStatus struct {
	StatsLocation string
	I18nLocation  string
	Batches       int
	Languages     []string
	LoadedAt      time.Time
	LastError     string
	Refresh       time.Duration
}
