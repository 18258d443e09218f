package renderer

import "slices"

var bars = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as a one line bar chart, scaled between their
// minimum and maximum.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := slices.Min(values), slices.Max(values)
	out := make([]rune, len(values))
	for i, v := range values {
		level := len(bars) / 2
		if hi > lo {
			level = int((v - lo) * float64(len(bars)-1) / (hi - lo))
		}
		out[i] = bars[level]
	}
	return string(out)
}
