// Package metrics contains typing speed and accuracy calculations.
package metrics

import (
	"math"
	"strings"
	"time"
)

// minElapsed keeps WPM finite before any time has passed.
const minElapsed = time.Nanosecond

// CharsPerWord is the standard word length used for WPM.
const CharsPerWord = 5.0

// sparkChars runs from an idle second to the peak.
const sparkChars = ".:-=+*#%@"

// WPM returns words per minute for correct characters over elapsed time.
func WPM(correct int, elapsed time.Duration) float64 {
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	return (float64(correct) / CharsPerWord) / elapsed.Minutes()
}

// Accuracy returns the percentage of judged characters that were correct.
// It is 100 when nothing has been judged yet.
func Accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total <= 0 {
		return 100.0
	}
	return float64(correct) / float64(total) * 100.0
}

// Remaining returns the whole seconds left of limit after elapsed.
func Remaining(limit, elapsed time.Duration) int {
	secs := int(limit/time.Second) - int(elapsed/time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// Sparkline renders per-second WPM samples as one ASCII line, scaled from
// zero to the fastest second. A single sample has no trend and renders empty.
func Sparkline(samples []float64) string {
	if len(samples) < 2 {
		return ""
	}
	peak := 0.0
	for _, v := range samples {
		peak = math.Max(peak, v)
	}
	last := len(sparkChars) - 1
	var b strings.Builder
	for _, v := range samples {
		idx := 0
		if peak > 0 && v > 0 {
			idx = int(math.Round(v / peak * float64(last)))
		}
		b.WriteByte(sparkChars[min(idx, last)])
	}
	return b.String()
}
