package views

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/aforo/charts"
	"github.com/eringen/aforo/dashboard"
)

const submitOnChange = `onchange="this.form.submit()"`

// Dashboard is the full page: header, filter form and charts.
func Dashboard(site SiteConfig, d dashboard.Dashboard) templ.Component {
	meta := PageMeta{
		Lang:        d.State.Language,
		Title:       d.Labels.Title,
		Description: d.Labels.Subtitle,
		URL:         buildURL(site.URL, "/?"+d.State.Query().Encode()),
	}
	return Layout(site, meta, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<header>`)
		fmt.Fprintf(&buf, `<h1 id="title">🧗 %s</h1>`, esc(d.Labels.Title))
		fmt.Fprintf(&buf, `<p id="subtitle">%s</p>`, esc(d.Labels.Subtitle))
		buf.WriteString(`</header>`)

		writeFilters(&buf, d)

		buf.WriteString(`<main id="charts">`)
		if err := Charts(d).Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`</main>`)
		_, err := w.Write(buf.Bytes())
		return err
	}))
}

func writeFilters(buf *bytes.Buffer, d dashboard.Dashboard) {
	buf.WriteString(`<form id="filters" class="controls" method="get" action="/">`)

	buf.WriteString(`<div class="control">`)
	fmt.Fprintf(buf, `<label id="label-lang" for="lang">%s</label>`, esc(d.Labels.Language))
	writeSelect(buf, "lang", dashboard.ParamLanguage, d.Controls.Languages)
	buf.WriteString(`</div>`)

	buf.WriteString(`<div class="control">`)
	fmt.Fprintf(buf, `<label id="label-place" for="place">%s</label>`, esc(d.Labels.Place))
	writeSelect(buf, "place", dashboard.ParamVenue, d.Controls.Venues)
	buf.WriteString(`</div>`)

	buf.WriteString(`<fieldset class="control months">`)
	fmt.Fprintf(buf, `<legend id="label-months">%s</legend>`, esc(d.Labels.Months))
	fmt.Fprintf(buf, `<input type="hidden" name="%s" value="none">`, dashboard.ParamMonths)
	buf.WriteString(`<div id="months">`)
	for _, m := range d.Controls.Months {
		class, checked := "", ""
		if m.Selected {
			class, checked = ` class="selected"`, " checked"
		}
		fmt.Fprintf(buf, `<label%s><input type="checkbox" name="%s" value="%s"%s %s><span>%s</span></label>`,
			class, dashboard.ParamMonths, m.Value, checked, submitOnChange, esc(m.Name))
	}
	buf.WriteString(`</div></fieldset>`)

	buf.WriteString(`<div class="control">`)
	fmt.Fprintf(buf, `<label for="evolution-range">%s</label>`, esc(d.Labels.Evolution))
	writeSelect(buf, "evolution-range", dashboard.ParamWindow, d.Controls.Windows)
	buf.WriteString(`</div>`)

	buf.WriteString(`<noscript><button type="submit">&#8635;</button></noscript>`)
	buf.WriteString(`</form>`)
}

func writeSelect(buf *bytes.Buffer, id, name string, opts []dashboard.Option) {
	fmt.Fprintf(buf, `<select id="%s" name="%s" %s>`, id, name, submitOnChange)
	for _, o := range opts {
		selected := ""
		if o.Selected {
			selected = " selected"
		}
		fmt.Fprintf(buf, `<option value="%s"%s>%s</option>`, esc(o.Value), selected, esc(o.Label))
	}
	buf.WriteString(`</select>`)
}

// Charts is the part of the page that changes with the filter state. It is
// also served alone for ?partial=charts.
func Charts(d dashboard.Dashboard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer

		buf.WriteString(`<section class="card total-card">`)
		fmt.Fprintf(&buf, `<h2 id="label-total">%s</h2>`, esc(d.Labels.Total))
		fmt.Fprintf(&buf, `<div id="total" style="%s">%s</div>`, esc(d.TotalStyle()), esc(d.TotalText))
		buf.WriteString(`</section>`)

		buf.WriteString(`<section class="card">`)
		fmt.Fprintf(&buf, `<h2 id="label-weekday" data-tooltip="%s">%s</h2>`, esc(d.Labels.TooltipWeekday), esc(d.Labels.Weekday))
		buf.WriteString(`<div id="weekday-chart" class="bar-chart">`)
		if err := charts.Bars(d.WeekdayLabels, d.Weekday).Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`</div></section>`)

		buf.WriteString(`<section class="card">`)
		fmt.Fprintf(&buf, `<h2 id="label-month">%s</h2>`, esc(d.Labels.Month))
		buf.WriteString(`<div id="month-chart" class="bar-chart">`)
		if err := charts.Bars(d.MonthLabels, d.Month).Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`</div></section>`)

		buf.WriteString(`<section class="card evolution-card">`)
		fmt.Fprintf(&buf, `<h2 id="label-evolution">%s</h2>`, esc(d.Labels.Evolution))
		buf.WriteString(`<div id="evolution-chart">`)
		if err := charts.Evolution(d.Evolution, d.EvolutionOptions).Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(`</div></section>`)

		_, err := w.Write(buf.Bytes())
		return err
	})
}
