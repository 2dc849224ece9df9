package views

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func csrfField(token string) string {
	return fmt.Sprintf(`<input type="hidden" name="_csrf" value="%s">`, esc(token))
}

// AdminLogin is the password form.
func AdminLogin(site SiteConfig, showError bool, csrfToken string) templ.Component {
	return Layout(site, PageMeta{Title: "Admin"}, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<main class="admin"><h1>Admin</h1>`)
		if showError {
			buf.WriteString(`<p class="error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		buf.WriteString(csrfField(csrfToken))
		buf.WriteString(`<input type="password" name="password" autocomplete="current-password" required autofocus>`)
		buf.WriteString(`<button type="submit">Log in</button></form></main>`)
		_, err := w.Write(buf.Bytes())
		return err
	}))
}

// AdminDashboard shows the loaded data and offers a reload.
func AdminDashboard(site SiteConfig, st AdminStatus, msg, csrfToken string) templ.Component {
	return Layout(site, PageMeta{Title: "Admin"}, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<main class="admin"><h1>Admin</h1>`)
		if msg != "" {
			fmt.Fprintf(&buf, `<p class="notice">%s</p>`, esc(msg))
		}
		buf.WriteString(`<dl class="status">`)
		row := func(k, v string) {
			fmt.Fprintf(&buf, `<dt>%s</dt><dd>%s</dd>`, esc(k), esc(v))
		}
		row("Snapshots", st.StatsLocation)
		row("Translations", st.I18nLocation)
		row("Batches", fmt.Sprint(st.Batches))
		row("Languages", strings.Join(st.Languages, ", "))
		if !st.LoadedAt.IsZero() {
			row("Loaded", st.LoadedAt.Format("2006-01-02 15:04:05 MST"))
		}
		if st.Refresh > 0 {
			row("Refresh", st.Refresh.String())
		}
		if st.LastError != "" {
			row("Last error", st.LastError)
		}
		buf.WriteString(`</dl>`)

		buf.WriteString(`<form method="post" action="/admin/reload/">`)
		buf.WriteString(csrfField(csrfToken))
		buf.WriteString(`<button type="submit">Reload data</button></form>`)
		buf.WriteString(`<form method="post" action="/admin/logout/">`)
		buf.WriteString(csrfField(csrfToken))
		buf.WriteString(`<button type="submit">Log out</button></form>`)
		buf.WriteString(`<p><a href="/">&larr; Dashboard</a></p></main>`)
		_, err := w.Write(buf.Bytes())
		return err
	}))
}
