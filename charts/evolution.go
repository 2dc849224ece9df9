package charts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	svg "github.com/ajstarks/svgo"

	"github.com/eringen/aforo/colormap"
	"github.com/eringen/aforo/occupancy"
)

// Padding is the space around the plot area, in SVG user units.
type Padding struct {
	Top, Right, Bottom, Left int
}

// EvolutionOptions configures the evolution chart.
type EvolutionOptions struct {
	Width     int
	Height    int
	Padding   Padding
	Table     colormap.Table
	EmptyText string
	// DateFormat is a time layout for the x axis labels.
	DateFormat string
}

// DefaultEvolutionOptions matches the dashboard stylesheet.
func DefaultEvolutionOptions() EvolutionOptions {
	return EvolutionOptions{
		Width:      800,
		Height:     200,
		Padding:    Padding{Top: 20, Right: 20, Bottom: 30, Left: 40},
		Table:      colormap.Default,
		EmptyText:  "Not enough data",
		DateFormat: "Jan 2",
	}
}

// XY is a plotted point.
type XY struct {
	X, Y float64
}

// GridLine is a horizontal value gridline with its label.
type GridLine struct {
	Y     float64
	Label string
}

// DateTick is an x axis label.
type DateTick struct {
	X     float64
	Label string
}

// Geometry is the computed layout of an evolution chart.
type Geometry struct {
	Width, Height  int
	Left, Top      float64
	GraphW, GraphH float64
	Points         []XY
	Grid           []GridLine
	Ticks          []DateTick
	AreaPath       string
	LinePath       string
}

// Bottom is the y coordinate of the value axis baseline.
func (g Geometry) Bottom() float64 {
	return g.Top + g.GraphH
}

var (
	valueTicks = []float64{0, 0.25, 0.5, 0.75, 1}
	dateTicks  = 5
)

// Layout computes the chart geometry. It reports false when the series has
// fewer than two points, which is the "not enough data" state.
func Layout(series []occupancy.Point, opts EvolutionOptions) (Geometry, bool) {
	if len(series) < 2 {
		return Geometry{}, false
	}
	g := Geometry{
		Width:  opts.Width,
		Height: opts.Height,
		Left:   float64(opts.Padding.Left),
		Top:    float64(opts.Padding.Top),
		GraphW: float64(opts.Width - opts.Padding.Left - opts.Padding.Right),
		GraphH: float64(opts.Height - opts.Padding.Top - opts.Padding.Bottom),
	}

	minTime := series[0].Date
	maxTime := series[len(series)-1].Date
	span := maxTime.Sub(minTime)
	x := func(t time.Time) float64 {
		if span <= 0 {
			return g.Left
		}
		return g.Left + float64(t.Sub(minTime))/float64(span)*g.GraphW
	}
	y := func(v float64) float64 {
		return g.Top + g.GraphH - v*g.GraphH
	}

	var area, line strings.Builder
	fmt.Fprintf(&area, "M %s %s", coord(g.Left), coord(g.Bottom()))
	for i, p := range series {
		pt := XY{X: x(p.Date), Y: y(p.Value)}
		g.Points = append(g.Points, pt)
		fmt.Fprintf(&area, " L %s %s", coord(pt.X), coord(pt.Y))
		if i > 0 {
			line.WriteByte(' ')
		}
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&line, "%s %s %s", cmd, coord(pt.X), coord(pt.Y))
	}
	fmt.Fprintf(&area, " L %s %s Z", coord(g.Left+g.GraphW), coord(g.Bottom()))
	g.AreaPath = area.String()
	g.LinePath = line.String()

	for _, tick := range valueTicks {
		g.Grid = append(g.Grid, GridLine{Y: y(tick), Label: FormatPercent(tick, 0)})
	}

	for i := 0; i < dateTicks; i++ {
		t := minTime.Add(time.Duration(float64(span) * float64(i) / float64(dateTicks-1)))
		g.Ticks = append(g.Ticks, DateTick{X: x(t), Label: t.Format(opts.DateFormat)})
	}
	return g, true
}

// Evolution renders the daily evolution series as an inline SVG line and
// area chart, or a placeholder when there are fewer than two days.
func Evolution(series []occupancy.Point, opts EvolutionOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		g, ok := Layout(series, opts)
		if !ok {
			fmt.Fprintf(&buf, `<div class="evolution-empty">%s</div>`, templ.EscapeString(opts.EmptyText))
		} else {
			writeEvolution(&buf, g, opts.Table)
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeEvolution(buf *bytes.Buffer, g Geometry, table colormap.Table) {
	canvas := svg.New(buf)
	// svgo's Start emits an XML prolog, which does not belong inside HTML.
	fmt.Fprintf(canvas.Writer, `<svg viewBox="0 0 %d %d" class="evolution-svg" xmlns="http://www.w3.org/2000/svg">`+"\n", g.Width, g.Height)

	canvas.Def()
	writeGradient(canvas, "evo-line-grad", 1, g, table)
	writeGradient(canvas, "evo-area-grad", 0.3, g, table)
	canvas.DefEnd()

	canvas.Path(g.AreaPath, `class="evolution-area"`, `fill="url(#evo-area-grad)"`)

	// svgo's Line and Text take ints; gridlines must share the path's
	// fractional coordinates.
	left, right := coord(g.Left), coord(g.Left+g.GraphW)
	for _, gl := range g.Grid {
		y := coord(gl.Y)
		fmt.Fprintf(canvas.Writer, `<line x1="%s" y1="%s" x2="%s" y2="%s" class="evolution-grid"/>`+"\n", left, y, right, y)
		writeLabel(canvas, g.Left-5, gl.Y+4, "end", gl.Label)
	}

	canvas.Path(g.LinePath, `class="evolution-line"`, `fill="none"`, `stroke="url(#evo-line-grad)"`)

	for _, tick := range g.Ticks {
		writeLabel(canvas, tick.X, float64(g.Height-10), "middle", tick.Label)
	}
	canvas.End()
}

func writeLabel(canvas *svg.SVG, x, y float64, anchor, text string) {
	fmt.Fprintf(canvas.Writer, `<text x="%s" y="%s" text-anchor="%s" class="evolution-label">%s</text>`+"\n",
		coord(x), coord(y), anchor, templ.EscapeString(text))
}

// writeGradient emits a vertical gradient in user space running from the
// baseline (0%) up to the top of the plot (100%). svgo's LinearGradient only
// speaks objectBoundingBox percentages, which collapse on a flat line.
func writeGradient(canvas *svg.SVG, id string, opacity float64, g Geometry, table colormap.Table) {
	fmt.Fprintf(canvas.Writer,
		`<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="0" y1="%s" x2="0" y2="%s">`+"\n",
		id, coord(g.Bottom()), coord(g.Top))
	for _, p := range table.Percents() {
		fmt.Fprintf(canvas.Writer, `<stop offset="%s%%" stop-color="%s" stop-opacity="%s"/>`+"\n",
			trimFloat(p), table.Color(p).Compact(), trimFloat(opacity))
	}
	fmt.Fprintln(canvas.Writer, `</linearGradient>`)
}
