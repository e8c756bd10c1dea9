// Package format renders durations, timestamps and text for display in the terminal.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// MinutesSeconds formats a number of seconds as m:ss
func MinutesSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Date formats a unix timestamp as "2 Jan" in local time
func Date(unix int64) string {
	return time.Unix(unix, 0).Format("2 Jan")
}

// DateTime formats a unix timestamp as "2 Jan 2006, 15:04" in local time
func DateTime(unix int64) string {
	return time.Unix(unix, 0).Format("2 Jan 2006, 15:04")
}

// ExpiresIn returns the hours left until the unix timestamp expires, rounded, e.g. "23h".  "0" once expired.
func ExpiresIn(unix int64, now time.Time) string {
	hours := math.Round(time.Unix(unix, 0).Sub(now).Hours())
	if hours < 0 {
		return "0"
	}
	return fmt.Sprintf("%dh", int(hours))
}

// Truncate cuts s to fit within maxWidth cells, ending with "..." when it had to cut
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	width := 0
	for i, r := range s {
		charWidth := runewidth.RuneWidth(r)
		if width+charWidth > maxWidth-3 { // Reserve space for "..."
			return s[:i] + "..."
		}
		width += charWidth
	}
	return s
}

// FirstLine returns the first non-empty line of s, for list previews of multi-line scripts
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
