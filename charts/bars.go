// Package charts renders the dashboard charts as templ components: a
// horizontal bar chart in plain HTML and the evolution line chart in SVG.
//
// Layout math lives in BarsLayout and Layout so it can be checked without
// parsing markup.
package charts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/a-h/templ"

	"github.com/eringen/aforo/colormap"
)

// ErrLengthMismatch is returned when a bar chart gets a different number of
// labels and values.
var ErrLengthMismatch = errors.New("charts: labels and values differ in length")

// Bar is the computed geometry and color of one bar.
type Bar struct {
	Label   string
	Percent float64 // value*100, non-finite normalized to 0
	Width   float64 // Percent clamped to [0,100]
	Color   colormap.RGB
	Light   colormap.RGB
	Band    colormap.Band
}

// BarsLayout computes one Bar per value.
func BarsLayout(labels []string, values []float64, table colormap.Table) ([]Bar, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(labels), len(values))
	}
	bars := make([]Bar, len(values))
	for i, v := range values {
		pct := Percent(v)
		c := table.Color(pct)
		bars[i] = Bar{
			Label:   labels[i],
			Percent: pct,
			Width:   math.Max(0, math.Min(100, pct)),
			Color:   c,
			Light:   c.Lightened(),
			Band:    table.Band(pct),
		}
	}
	return bars, nil
}

// Bars renders a horizontal bar per value, in order.
func Bars(labels []string, values []float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bars, err := BarsLayout(labels, values, colormap.Default)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		for _, b := range bars {
			writeBar(&buf, b)
		}
		_, err = w.Write(buf.Bytes())
		return err
	})
}

func writeBar(buf *bytes.Buffer, b Bar) {
	style := fmt.Sprintf(
		"width: %s%%; background: linear-gradient(90deg, %s, %s); box-shadow: 0 0 15px %s, inset 0 0 10px rgba(255, 255, 255, 0.2)",
		trimFloat(b.Width), b.Color.CSS(), b.Light.CSS(), b.Color.CSSAlpha(0.5),
	)
	buf.WriteString(`<div class="bar-container">`)
	fmt.Fprintf(buf, `<div class="bar-label">%s</div>`, templ.EscapeString(b.Label))
	buf.WriteString(`<div class="bar-track">`)
	fmt.Fprintf(buf, `<div class="bar-fill bar-%s" style="%s">`, b.Band, templ.EscapeString(style))
	fmt.Fprintf(buf, `<span class="bar-value">%s</span>`, FormatPercent(b.Percent/100, 0))
	buf.WriteString(`</div></div></div>`)
}
