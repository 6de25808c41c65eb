package diff

import (
	"math"
	"regexp"
	"strconv"
)

var dateWithTime = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})T\d{2}:\d{2}:\d{2}`)

// CleanDate trims an upstream date string to calendar-day granularity so
// same-day timestamp jitter is never reported as a change.
func CleanDate(s string) string {
	if m := dateWithTime.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// CleanNum renders a score with at most two decimal places, trailing
// zeros trimmed.
func CleanNum(f float64) string {
	rounded := math.Round(f*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// Ordinal renders 1 as "1st", 2 as "2nd", 11 as "11th" and so on.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
