package charts

import (
	"math"
	"strconv"
)

// Percent converts a ratio to a percentage, mapping NaN and ±Inf to 0.
func Percent(ratio float64) float64 {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return ratio * 100
}

// FormatPercent renders a ratio as "NN%" with the given number of decimals,
// rounding half away from zero.
func FormatPercent(ratio float64, decimals int) string {
	scale := math.Pow10(decimals)
	pct := math.Round(Percent(ratio)*scale) / scale
	return strconv.FormatFloat(pct, 'f', decimals, 64) + "%"
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
