package validate

import (
	"strings"
	"unicode"
)

// SanitizeTitle trims a title and removes control characters.
func SanitizeTitle(title string) string {
	title = strings.TrimSpace(title)

	var sb strings.Builder
	for _, r := range title {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// SanitizeNote cleans a description for safe storage.
func SanitizeNote(note string) string {
	note = strings.TrimSpace(note)

	// Remove null bytes
	note = strings.ReplaceAll(note, "\x00", "")

	// Normalize line endings
	note = strings.ReplaceAll(note, "\r\n", "\n")
	note = strings.ReplaceAll(note, "\r", "\n")

	return note
}

// SanitizeAssignee reduces a name to upper-case initials, at most two letters.
// Input that is already short is upper-cased as is.
func SanitizeAssignee(name string) string {
	fields := strings.Fields(name)
	switch {
	case len(fields) == 0:
		return ""
	case len(fields) == 1 && len([]rune(fields[0])) <= 3:
		return strings.ToUpper(fields[0])
	}

	var sb strings.Builder
	for _, f := range fields {
		r := []rune(f)[0]
		if unicode.IsLetter(r) {
			sb.WriteRune(unicode.ToUpper(r))
		}
		if sb.Len() >= 2 {
			break
		}
	}
	return sb.String()
}

// TruncateString truncates a string to the given length, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
