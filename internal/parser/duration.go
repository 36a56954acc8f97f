package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationPattern matches duration expressions like "25", "30m", "1h30m", "2.5h", etc.
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)?\s*(?:(\d+(?:\.\d+)?)\s*(m|min|mins|minute|minutes))?$`)

// ParseDuration parses a human-readable duration string.
// A bare number is read as minutes. Supports formats like:
//   - "25" or "25m" or "25 minutes"
//   - "2h" or "2 hours"
//   - "1h30m" or "1 hour 30 minutes"
//   - "2.5h"
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, NewDurationError(input)
	}

	// Standard Go duration format first (e.g., "1h30m", "90s")
	if d, err := time.ParseDuration(input); err == nil {
		if d <= 0 {
			return 0, NewDurationError(input)
		}
		return d, nil
	}

	matches := durationPattern.FindStringSubmatch(input)
	if matches == nil {
		return 0, NewDurationError(input)
	}

	var total time.Duration

	if matches[1] != "" {
		value, _ := strconv.ParseFloat(matches[1], 64)
		total += unitToDuration(value, strings.ToLower(matches[2]))
	}

	// Second number and unit (for "1h 30m" style)
	if matches[3] != "" {
		value, _ := strconv.ParseFloat(matches[3], 64)
		total += unitToDuration(value, strings.ToLower(matches[4]))
	}

	if total <= 0 {
		return 0, NewDurationError(input)
	}
	return total, nil
}

// ParseMinutes parses a duration and rounds it to whole minutes.
// Results under one minute are rejected.
func ParseMinutes(input string) (int, error) {
	d, err := ParseDuration(input)
	if err != nil {
		return 0, err
	}
	minutes := int(math.Round(d.Minutes()))
	if minutes < 1 {
		return 0, NewDurationError(input)
	}
	return minutes, nil
}

// unitToDuration converts a value and unit to a duration. Minutes are the default unit.
func unitToDuration(value float64, unit string) time.Duration {
	switch unit {
	case "h", "hr", "hrs", "hour", "hours":
		return time.Duration(value * float64(time.Hour))
	default:
		return time.Duration(value * float64(time.Minute))
	}
}
