package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/boost/internal/errors"
)

// InputError represents a parse failure with helpful suggestions.
type InputError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// FormatWithExamples returns the error message with example suggestions.
func (e *InputError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// DurationExamples provides example duration formats.
var DurationExamples = []string{
	"25",
	"25m",
	"1h30m",
	"45 minutes",
	"1.5h",
}

// DayExamples provides example day formats.
var DayExamples = []string{
	"today",
	"yesterday",
	"2024-05-15",
	"3 days ago",
}

// NewDurationError creates a duration parse error with standard examples.
func NewDurationError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "duration",
		Message:    "could not parse duration",
		Examples:   DurationExamples,
		Suggestion: "A bare number is read as minutes. Durations must be at least one minute.",
	}
}

// NewDayError creates a day parse error with standard examples.
func NewDayError(input string) *InputError {
	return &InputError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DayExamples,
		Suggestion: "Use YYYY-MM-DD or natural language like 'yesterday'.",
	}
}

// ToUserError converts an InputError to a UserError for consistent handling.
func (e *InputError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	return errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
}

// Unwrap maps the failure onto the matching sentinel.
func (e *InputError) Unwrap() error {
	switch e.Field {
	case "duration":
		return errors.ErrInvalidDuration
	case "date":
		return errors.ErrInvalidDate
	default:
		return nil
	}
}
