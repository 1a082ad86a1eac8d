// Package duration normalizes user-entered march durations and clock times.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxField caps a single parsed field so any hour/minute/second combination
// stays within time.Duration range.
const maxField = 1_000_000

// Field converts one raw numeric field to a non-negative integer. Empty,
// non-numeric, non-finite, and negative input all normalize to zero;
// fractional values truncate toward zero and values past maxField clamp to
// it. Field never fails.
func Field(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		switch {
		case n < 0:
			return 0
		case n > maxField:
			return maxField
		}
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > maxField {
		return maxField
	}
	return int(f)
}

// Seconds converts a minute/second field pair to total seconds.
func Seconds(minutes, seconds string) int {
	return Field(minutes)*60 + Field(seconds)
}

// SecondsHMS converts an hour/minute/second field triple to total seconds.
func SecondsHMS(hours, minutes, seconds string) int {
	return Field(hours)*3600 + Seconds(minutes, seconds)
}

// ParseColon reads a colon-separated duration: "SS", "M:SS", or "H:M:S".
// Segments are normalized by Field, so a malformed segment counts as zero;
// segments beyond hours are ignored.
func ParseColon(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 1:
		return Field(parts[0])
	case 2:
		return Seconds(parts[0], parts[1])
	default:
		n := len(parts)
		return SecondsHMS(parts[n-3], parts[n-2], parts[n-1])
	}
}

// FormatSeconds renders a duration as "M:SS" under an hour and "H:MM:SS"
// at or above. ParseColon(FormatSeconds(n)) == n for every n >= 0 whose
// hour count fits maxField.
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSigned renders a start delta with an explicit sign.
func FormatSigned(delta int) string {
	switch {
	case delta > 0:
		return "+" + FormatSeconds(delta)
	case delta < 0:
		return "-" + FormatSeconds(-delta)
	default:
		return "0:00"
	}
}

// Clock renders an instant as HH:MM:SS UTC.
func Clock(t time.Time) string {
	return t.UTC().Format("15:04:05")
}

// ParseClock reads an "HH:MM" or "HH:MM:SS" UTC wall-clock time and returns
// its next occurrence at or after now, rolling to the following day when
// the time has already passed. Unlike the field parsers this one fails on
// malformed input: a fixed-target plan needs explicit validation rather
// than a silent zero.
func ParseClock(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	var layout string
	switch strings.Count(s, ":") {
	case 1:
		layout = "15:04"
	case 2:
		layout = "15:04:05"
	default:
		return time.Time{}, fmt.Errorf("invalid clock time %q (expected HH:MM or HH:MM:SS)", s)
	}
	parsed, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q (expected HH:MM or HH:MM:SS)", s)
	}
	nowUTC := now.UTC()
	target := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC)
	if target.Before(nowUTC.Truncate(time.Second)) {
		target = target.Add(24 * time.Hour)
	}
	return target, nil
}
