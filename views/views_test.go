package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

var testSite = SiteConfig{Name: "Aforo", URL: "https://aforo.example/", Description: "Occupancy"}

func TestLayoutFallsBackToSite(t *testing.T) {
	out := render(t, Layout(testSite, PageMeta{}, templ.Raw("<p>x</p>")))
	for _, want := range []string{
		`<html lang="en">`,
		`<title>Aforo</title>`,
		`<meta name="description" content="Occupancy">`,
		`<meta property="og:image" content="https://aforo.example/og.png">`,
		`<body><p>x</p></body>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("layout missing %q", want)
		}
	}
}

func TestLayoutEscapes(t *testing.T) {
	out := render(t, Layout(testSite, PageMeta{Title: `<b>"x"</b>`}, templ.Raw("")))
	if strings.Contains(out, "<b>") {
		t.Error("title was not escaped")
	}
}

func TestAdminLogin(t *testing.T) {
	out := render(t, AdminLogin(testSite, true, "tok"))
	if !strings.Contains(out, `<input type="hidden" name="_csrf" value="tok">`) {
		t.Error("missing csrf field")
	}
	if !strings.Contains(out, "Wrong password.") {
		t.Error("missing error message")
	}
	if strings.Contains(render(t, AdminLogin(testSite, false, "tok")), "Wrong password.") {
		t.Error("error shown without a failed attempt")
	}
}

func TestAdminDashboard(t *testing.T) {
	st := AdminStatus{
		StatsLocation: "data/stats.json",
		I18nLocation:  "data/i18n.json",
		Batches:       3,
		Languages:     []string{"en", "es"},
		LoadedAt:      time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
		LastError:     "timeout",
		Refresh:       time.Hour,
	}
	out := render(t, AdminDashboard(testSite, st, "Data reloaded.", "tok"))
	for _, want := range []string{
		`<p class="notice">Data reloaded.</p>`,
		`<dt>Batches</dt><dd>3</dd>`,
		`<dd>en, es</dd>`,
		`<dd>2024-01-10 08:00:00 UTC</dd>`,
		`<dd>1h0m0s</dd>`,
		`<dt>Last error</dt><dd>timeout</dd>`,
		`action="/admin/reload/"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("admin dashboard missing %q", want)
		}
	}
}

func TestErrorPages(t *testing.T) {
	if out := render(t, NotFound(testSite)); !strings.Contains(out, "<h1>404</h1>") {
		t.Error("NotFound missing code")
	}
	if out := render(t, ServerError(testSite)); !strings.Contains(out, "<h1>500</h1>") {
		t.Error("ServerError missing code")
	}
}
