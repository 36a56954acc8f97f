package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrTaskNotFound:       "Use 'boost task list' to see task IDs.",
	ErrTicketNotFound:     "Use 'boost ticket list' to see ticket codes.",
	ErrHabitNotFound:      "Use 'boost habit list' to see habits.",
	ErrSubtaskNotFound:    "Use 'boost ticket list -v' to see subtasks.",
	ErrAmbiguousID:        "Type more characters of the ID.",
	ErrEmptyTitle:         "Provide a non-empty title.",
	ErrInvalidPriority:    "Use one of: high, medium, low.",
	ErrInvalidStatus:      "Use one of: todo, in-progress, review, done.",
	ErrInvalidDuration:    "Try formats like '25', '25m', '1h30m' or '45 minutes'.",
	ErrInvalidDate:        "Try formats like '2024-05-15', 'today', 'yesterday' or 'last monday'.",
	ErrInvalidStoryPoints: "Story points must be one of 1, 2, 3, 5, 8, 13, 21.",
	ErrInvalidEmail:       "Provide an address like 'name@example.com'.",
	ErrMissingAPIKey:      "Set BOOST_LLM_APIKEY or GEMINI_API_KEY, or add llm.apiKey to your config file.",

	// System errors
	ErrDiskFull:           "Free up disk space and try again.",
	ErrStorageCorrupted:   "Run 'boost doctor --repair' to back up and reset unreadable collections.",
	ErrNetworkUnavailable: "Check your internet connection.",
	ErrTimeout:            "The operation took too long. Try again or raise llm.timeout.",
	ErrPermissionDenied:   "Check file permissions in your data directory (~/.local/share/boost/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's a UserError with a suggestion
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrInvalidDuration: {
		"boost task add \"Write report\" -d 30",
		"boost focus --focus 50m --break 10m",
	},
	ErrInvalidDate: {
		"boost habit toggle workout --date yesterday",
		"boost task add \"Plan sprint\" --date 2024-05-15",
	},
	ErrInvalidStatus: {
		"boost ticket move PROJ-101 review",
		"boost ticket move PROJ-101 done",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}
