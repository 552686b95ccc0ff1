package util

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

var siPrefixes = []struct {
	exp    int
	prefix string
}{
	{9, "G"}, {6, "M"}, {3, "k"}, {0, ""},
	{-3, "m"}, {-6, "µ"}, {-9, "n"}, {-12, "p"},
}

// FormatSI formats v with an SI prefix and three significant digits,
// e.g. 1.874e7 m/s → "18.7 Mm/s".
func FormatSI(v float64, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v %s", v, unit)
	}
	if v == 0 {
		return "0 " + unit
	}
	abs := math.Abs(v)
	for _, p := range siPrefixes {
		scale := math.Pow10(p.exp)
		if abs >= scale*0.9995 {
			return fmt.Sprintf("%.3g %s%s", v/scale, p.prefix, unit)
		}
	}
	last := siPrefixes[len(siPrefixes)-1]
	return fmt.Sprintf("%.3g %s%s", v/math.Pow10(last.exp), last.prefix, unit)
}
