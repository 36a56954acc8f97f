package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/model"
)

// =============================================================================
// Duration Tests
// =============================================================================

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{"25", 25 * time.Minute},
		{"25m", 25 * time.Minute},
		{"25 minutes", 25 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"1h 30m", 90 * time.Minute},
		{"2 hours", 2 * time.Hour},
		{"1.5h", 90 * time.Minute},
		{"90s", 90 * time.Second},
		{"  45m  ", 45 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "0m", "-5m", "5 parsecs"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDuration(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidDuration)
		})
	}
}

func TestParseMinutes(t *testing.T) {
	m, err := ParseMinutes("1h")
	require.NoError(t, err)
	assert.Equal(t, 60, m)

	m, err = ParseMinutes("90s")
	require.NoError(t, err)
	assert.Equal(t, 2, m)

	_, err = ParseMinutes("20s")
	assert.Error(t, err)
}

// =============================================================================
// Day Tests
// =============================================================================

func TestParseDay(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 0, 0, 0, time.Local)

	tests := []struct {
		input    string
		expected model.DayKey
	}{
		{"", "2024-05-15"},
		{"today", "2024-05-15"},
		{"Yesterday", "2024-05-14"},
		{"tomorrow", "2024-05-16"},
		{"2024-01-31", "2024-01-31"},
		{"3 days ago", "2024-05-12"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDayInvalid(t *testing.T) {
	_, err := ParseDay("not a date at all", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidDate)
}

// =============================================================================
// Error Tests
// =============================================================================

func TestInputError(t *testing.T) {
	err := NewDurationError("soon")
	assert.Equal(t, "invalid duration 'soon': could not parse duration", err.Error())

	formatted := err.FormatWithExamples()
	assert.Contains(t, formatted, "Valid examples:")
	assert.Contains(t, formatted, "1h30m")

	ue := err.ToUserError()
	assert.Equal(t, "duration", ue.Field)
	assert.Equal(t, "soon", ue.Value)
	assert.NotEmpty(t, ue.Suggestion)
}

func TestInputErrorToUserErrorExamples(t *testing.T) {
	err := &InputError{Field: "date", Input: "x", Message: "bad", Examples: DayExamples}
	ue := err.ToUserError()
	assert.Equal(t, "Try: today, yesterday, 2024-05-15", ue.Suggestion)
}
