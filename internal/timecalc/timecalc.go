package timecalc

import (
	"fmt"
	"time"
)

// WallClockLayout is the layout used for rotation in/out stamps and event times.
const WallClockLayout = "15:04:05"

// FormatClock formats seconds as "M:SS", the way the match clock and player
// cards display time. Minutes are not capped at 59. Negative input is clamped to 0.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatDuration formats seconds as a human-readable string like "1h 40m", "45m 0s" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatWallClock formats t as a wall-clock stamp.
func FormatWallClock(t time.Time) string {
	return t.Format(WallClockLayout)
}

// ElapsedSeconds returns the whole seconds between from and to, floored.
// A to before from yields 0.
func ElapsedSeconds(from, to time.Time) int64 {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// Percent returns part as a whole percentage of total, or 0 when total is 0.
func Percent(part, total int64) int64 {
	if total <= 0 {
		return 0
	}
	return part * 100 / total
}
