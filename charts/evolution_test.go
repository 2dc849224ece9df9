package charts

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/eringen/aforo/occupancy"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestLayoutHorizontalLine(t *testing.T) {
	series := []occupancy.Point{{Date: day(1), Value: 0.5}, {Date: day(8), Value: 0.5}}
	g, ok := Layout(series, DefaultEvolutionOptions())
	if !ok {
		t.Fatal("Layout reported not enough data for two points")
	}
	if g.GraphW != 740 || g.GraphH != 150 {
		t.Fatalf("graph = %vx%v, want 740x150", g.GraphW, g.GraphH)
	}
	if len(g.Points) != 2 {
		t.Fatalf("got %d points", len(g.Points))
	}
	if g.Points[0].Y != 95 || g.Points[1].Y != 95 {
		t.Errorf("line not horizontal: %+v", g.Points)
	}
	if g.Points[0].X != 40 || g.Points[1].X != 780 {
		t.Errorf("x range = %v..%v, want 40..780", g.Points[0].X, g.Points[1].X)
	}
	if want := "M 40 95 L 780 95"; g.LinePath != want {
		t.Errorf("LinePath = %q, want %q", g.LinePath, want)
	}
	if want := "M 40 170 L 40 95 L 780 95 L 780 170 Z"; g.AreaPath != want {
		t.Errorf("AreaPath = %q, want %q", g.AreaPath, want)
	}
}

func TestLayoutGridAndTicks(t *testing.T) {
	series := []occupancy.Point{{Date: day(1), Value: 0}, {Date: day(9), Value: 1}}
	g, _ := Layout(series, DefaultEvolutionOptions())

	wantGrid := []GridLine{{170, "0%"}, {132.5, "25%"}, {95, "50%"}, {57.5, "75%"}, {20, "100%"}}
	if len(g.Grid) != len(wantGrid) {
		t.Fatalf("got %d gridlines", len(g.Grid))
	}
	for i, w := range wantGrid {
		if g.Grid[i] != w {
			t.Errorf("grid %d = %+v, want %+v", i, g.Grid[i], w)
		}
	}

	wantTicks := []string{"Jan 1", "Jan 3", "Jan 5", "Jan 7", "Jan 9"}
	for i, w := range wantTicks {
		if g.Ticks[i].Label != w {
			t.Errorf("tick %d = %q, want %q", i, g.Ticks[i].Label, w)
		}
	}
	if g.Ticks[0].X != 40 || g.Ticks[4].X != 780 {
		t.Errorf("ticks span %v..%v", g.Ticks[0].X, g.Ticks[4].X)
	}
}

func TestLayoutSameDate(t *testing.T) {
	series := []occupancy.Point{{Date: day(3), Value: 0.2}, {Date: day(3), Value: 0.4}}
	g, ok := Layout(series, DefaultEvolutionOptions())
	if !ok {
		t.Fatal("Layout reported not enough data")
	}
	for _, p := range g.Points {
		if p.X != 40 {
			t.Errorf("x = %v, want left edge", p.X)
		}
	}
	for _, tick := range g.Ticks {
		if tick.X != 40 || tick.Label != "Jan 3" {
			t.Errorf("tick = %+v", tick)
		}
	}
	if strings.Contains(g.LinePath, "NaN") || strings.Contains(g.AreaPath, "NaN") {
		t.Errorf("paths contain NaN: %q / %q", g.LinePath, g.AreaPath)
	}
}

func TestEvolutionPlaceholder(t *testing.T) {
	opts := DefaultEvolutionOptions()
	opts.EmptyText = "Sin datos"
	for _, series := range [][]occupancy.Point{nil, {{Date: day(1), Value: 0.5}}} {
		var buf bytes.Buffer
		if err := Evolution(series, opts).Render(context.Background(), &buf); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if got, want := buf.String(), `<div class="evolution-empty">Sin datos</div>`; got != want {
			t.Errorf("Render(%d points) = %q, want %q", len(series), got, want)
		}
	}
}

func TestEvolutionSVG(t *testing.T) {
	series := []occupancy.Point{{Date: day(1), Value: 0.5}, {Date: day(8), Value: 0.75}}
	var buf bytes.Buffer
	if err := Evolution(series, DefaultEvolutionOptions()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<?xml") {
		t.Error("inline SVG must not carry an XML prolog")
	}
	for _, want := range []string{
		`viewBox="0 0 800 200"`,
		`id="evo-line-grad" gradientUnits="userSpaceOnUse" x1="0" y1="170" x2="0" y2="20"`,
		`id="evo-area-grad"`,
		`stop-color="rgb(245,158,11)" stop-opacity="0.3"`,
		`stop-color="rgb(239,68,68)" stop-opacity="1"`,
		`class="evolution-area"`,
		`class="evolution-line"`,
		`stroke="url(#evo-line-grad)"`,
		`>Jan 1<`,
		`>Jan 8<`,
		`>100%<`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := strings.Count(out, `class="evolution-grid"`); got != 5 {
		t.Errorf("got %d gridlines, want 5", got)
	}
	if area, line := strings.Index(out, "evolution-area"), strings.Index(out, "evolution-line"); area > line {
		t.Error("area must be drawn before the line")
	}
}

func TestEvolutionGridMatchesPlottedValues(t *testing.T) {
	series := []occupancy.Point{{Date: day(1), Value: 0.25}, {Date: day(8), Value: 0.75}}
	opts := DefaultEvolutionOptions()
	g, ok := Layout(series, opts)
	if !ok {
		t.Fatal("Layout reported not enough data")
	}
	if g.Points[0].Y != g.Grid[1].Y || g.Points[1].Y != g.Grid[3].Y {
		t.Fatalf("points %+v do not sit on gridlines %+v", g.Points, g.Grid)
	}

	var buf bytes.Buffer
	if err := Evolution(series, opts).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<line x1="40" y1="132.5" x2="780" y2="132.5" class="evolution-grid"/>`,
		`<line x1="40" y1="57.5" x2="780" y2="57.5" class="evolution-grid"/>`,
		`<text x="35" y="136.5" text-anchor="end" class="evolution-label">25%</text>`,
		`M 40 132.5 L 780 57.5`,
		`<text x="225" y="190" text-anchor="middle" class="evolution-label">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
