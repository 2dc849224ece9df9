// Package colormap maps occupancy percentages onto the dashboard's
// green-to-amber-to-red gradient.
//
// A single threshold Table drives both the continuous color (ForPercentage)
// and the categorical band (Band) used for CSS classes, so the 50% and 75%
// breakpoints live in exactly one place.
package colormap

import (
	"fmt"
	"math"
	"strconv"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// CSS formats the color as `rgb(r, g, b)`.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// CSSAlpha formats the color as `rgba(r, g, b, a)`.
func (c RGB) CSSAlpha(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// Compact formats the color as `rgb(r,g,b)`, the form used in SVG attributes.
func (c RGB) Compact() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Vibrant scales every channel by 1.15, capped at 255. Used for the headline
// total figure.
func (c RGB) Vibrant() RGB {
	scale := func(v uint8) uint8 {
		return clampChannel(math.Round(float64(v) * 1.15))
	}
	return RGB{scale(c.R), scale(c.G), scale(c.B)}
}

// Lightened adds 30 to every channel, capped at 255. Used as the end stop of
// bar gradients.
func (c RGB) Lightened() RGB {
	lift := func(v uint8) uint8 {
		return clampChannel(float64(v) + 30)
	}
	return RGB{lift(c.R), lift(c.G), lift(c.B)}
}

// Band is the categorical occupancy level of a percentage.
type Band string

const (
	Low    Band = "low"
	Medium Band = "medium"
	High   Band = "high"
)

// Stop anchors the gradient at Percent. Percentages at or above Percent (and
// below the next stop) belong to Band.
type Stop struct {
	Percent float64
	Color   RGB
	Band    Band
}

// Table is an ascending list of gradient stops. It needs at least two stops
// to interpolate.
type Table []Stop

// Default is the dashboard gradient: low occupancy in soft green, a short
// rise to a lighter green at 50%, amber at 75% and red at 100%.
var Default = Table{
	{Percent: 0, Color: RGB{100, 180, 140}, Band: Low},
	{Percent: 50, Color: RGB{120, 190, 150}, Band: Medium},
	{Percent: 75, Color: RGB{245, 158, 11}, Band: High},
	{Percent: 100, Color: RGB{239, 68, 68}, Band: High},
}

// ForPercentage returns the Default gradient color for p in [0,100].
func ForPercentage(p float64) RGB {
	return Default.Color(p)
}

// BandFor returns the Default band for p.
func BandFor(p float64) Band {
	return Default.Band(p)
}

// Color interpolates the segment containing p, channel by channel, rounding
// each channel independently. Values outside the table extrapolate the first
// or last segment and are clamped to [0,255]. NaN is treated as 0.
func (t Table) Color(p float64) RGB {
	switch len(t) {
	case 0:
		return RGB{}
	case 1:
		return t[0].Color
	}
	if math.IsNaN(p) {
		p = 0
	}
	i := 0
	for i < len(t)-2 && p >= t[i+1].Percent {
		i++
	}
	lo, hi := t[i], t[i+1]
	ratio := (p - lo.Percent) / (hi.Percent - lo.Percent)
	return RGB{
		R: lerp(lo.Color.R, hi.Color.R, ratio),
		G: lerp(lo.Color.G, hi.Color.G, ratio),
		B: lerp(lo.Color.B, hi.Color.B, ratio),
	}
}

// Band returns the band of the last stop whose Percent is <= p.
func (t Table) Band(p float64) Band {
	if len(t) == 0 {
		return Low
	}
	band := t[0].Band
	for _, s := range t[1:] {
		if p >= s.Percent {
			band = s.Band
		}
	}
	return band
}

// Percents lists the stop positions, in order.
func (t Table) Percents() []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = s.Percent
	}
	return out
}

func lerp(from, to uint8, ratio float64) uint8 {
	return clampChannel(math.Round(float64(from) + (float64(to)-float64(from))*ratio))
}

func clampChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
