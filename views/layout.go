// Package views holds the HTML components of the dashboard. Components are
// plain templ.Components so handlers render them through the same path as
// generated templates.
package views

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// buildURL joins a path onto a base URL.
func buildURL(base, p string) string {
	return strings.TrimRight(base, "/") + p
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// Layout wraps body in the HTML document shell.
func Layout(site SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := meta.Title
		if title == "" {
			title = site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		lang := meta.Lang
		if lang == "" {
			lang = "en"
		}

		var buf bytes.Buffer
		fmt.Fprintf(&buf, `<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`, esc(lang))
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&buf, `<title>%s</title>`, esc(title))
		if desc != "" {
			fmt.Fprintf(&buf, `<meta name="description" content="%s">`, esc(desc))
		}
		fmt.Fprintf(&buf, `<meta property="og:title" content="%s">`, esc(title))
		if meta.URL != "" {
			fmt.Fprintf(&buf, `<meta property="og:url" content="%s">`, esc(meta.URL))
		}
		fmt.Fprintf(&buf, `<meta property="og:image" content="%s">`, esc(buildURL(site.URL, "/og.png")))
		buf.WriteString(`<link rel="stylesheet" href="/public/dashboard.css"></head><body>`)
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`</body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func NotFound(site SiteConfig) templ.Component {
	return Layout(site, PageMeta{Title: "Not found"}, message("404", "This page does not exist.", "/"))
}

func ServerError(site SiteConfig) templ.Component {
	return Layout(site, PageMeta{Title: "Error"}, message("500", "Something went wrong. Try again later.", "/"))
}

func message(code, text, back string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<main class="message"><h1>%s</h1><p>%s</p><a href="%s">&larr;</a></main>`,
			esc(code), esc(text), esc(back))
		return err
	})
}
