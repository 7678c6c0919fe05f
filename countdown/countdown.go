// Package countdown picks which runs of a schedule are on display and how long
// is left until each of them starts. Everything here is a pure function of the
// schedule and the reference time passed in.
package countdown

import (
	"fmt"
	"math"
	"time"

	"gdqwidget/model"
)

// WindowSize is the maximum number of runs on display at once.
const WindowSize = 3

// StartIndex returns the index of the first run to display: the most recently
// started run, or the first run when nothing has started yet. Once every run
// has started it is the last index. The schedule is trusted to be sorted.
func StartIndex(runs []model.Run, now time.Time) int {
	start := 0
	for ; start < len(runs); start++ {
		if runs[start].StartTime.After(now) {
			break
		}
	}
	// past the end counts as the last run being current
	if start > 0 {
		start--
	}
	return start
}

// SelectWindow returns up to WindowSize consecutive runs beginning at StartIndex.
// The returned slice shares its backing array with runs.
func SelectWindow(runs []model.Run, now time.Time) []model.Run {
	if len(runs) == 0 {
		return nil
	}
	start := StartIndex(runs, now)
	end := start + WindowSize
	if end > len(runs) {
		end = len(runs)
	}
	return runs[start:end]
}

// Format returns the approximate time left until start, or false once start is
// not in the future. Each unit is rounded to the nearest integer before the next
// conversion, so values near a boundary can jump a unit (119.5 minutes reads
// "2 hours").
func Format(now, start time.Time) (string, bool) {
	timeLeft := start.Sub(now)
	if timeLeft <= 0 {
		return "", false
	}

	seconds := math.Round(timeLeft.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%d seconds", int64(seconds)), true
	}
	minutes := math.Round(seconds / 60)
	if minutes < 120 {
		return fmt.Sprintf("%d minutes", int64(minutes)), true
	}
	hours := math.Round(minutes / 60)
	return fmt.Sprintf("%d hours", int64(hours)), true
}
