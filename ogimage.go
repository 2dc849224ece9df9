package aforo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/eringen/aforo/colormap"
)

// The badge is drawn on a small canvas with the 7x13 bitmap face and scaled
// up with nearest neighbor so the glyphs stay crisp.
const (
	ogWidth     = 1200
	ogHeight    = 630
	ogScale     = 5
	ogTextScale = 4
)

var (
	ogBackground = color.RGBA{15, 23, 42, 255}
	ogForeground = color.RGBA{226, 232, 240, 255}
	ogTrack      = color.RGBA{51, 65, 85, 255}
)

// renderBadge draws the OpenGraph image: title, the headline total in its
// gradient color and a bar filled to the total.
func renderBadge(title, total string, ratio float64, accent colormap.RGB) ([]byte, error) {
	w, h := ogWidth/ogScale, ogHeight/ogScale
	face := basicfont.Face7x13

	base := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(base, base.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)
	drawString(base, face, title, 8, 8+face.Metrics().Ascent.Ceil(), ogForeground)

	accentColor := color.RGBA{accent.R, accent.G, accent.B, 255}
	tw := font.MeasureString(face, total).Ceil()
	th := face.Metrics().Height.Ceil()
	if tw > 0 {
		text := image.NewRGBA(image.Rect(0, 0, tw, th))
		drawString(text, face, total, 0, face.Metrics().Ascent.Ceil(), accentColor)
		x := (w - tw*ogTextScale) / 2
		y := (h - th*ogTextScale) / 2
		dst := image.Rect(x, y, x+tw*ogTextScale, y+th*ogTextScale)
		draw.NearestNeighbor.Scale(base, dst, text, text.Bounds(), draw.Over, nil)
	}

	track := image.Rect(8, h-16, w-8, h-10)
	draw.Draw(base, track, image.NewUniform(ogTrack), image.Point{}, draw.Src)
	fill := track
	fill.Max.X = track.Min.X + int(math.Round(float64(track.Dx())*clampRatio(ratio)))
	draw.Draw(base, fill, image.NewUniform(accentColor), image.Point{}, draw.Src)

	out := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.NearestNeighbor.Scale(out, out.Bounds(), base, base.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawString(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func clampRatio(r float64) float64 {
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
