package svg

import "strings"

// ParsePoints reads a polygon/polyline points list into a flat coordinate
// slice. It returns nil when the list cannot be tokenized.
func ParsePoints(s string) []float64 {
	nums, ok := ParseNumbers(strings.TrimSpace(s))
	if !ok {
		return nil
	}
	return nums
}

// FormatPoints writes a flat coordinate slice as "x,y x,y ...".
func FormatPoints(coords []float64) string {
	var b strings.Builder
	for i, v := range coords {
		if i > 0 {
			if i%2 == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte(',')
			}
		}
		b.WriteString(FormatNumber(v))
	}
	return b.String()
}
