package logging

import (
	"strings"
)

// MaskChar is the character used for masking.
const MaskChar = "*"

// sensitiveKeywords mark configuration and log keys whose values are secrets.
var sensitiveKeywords = []string{"apikey", "api_key", "token", "secret", "password"}

// IsSensitiveField reports whether a key names secret material.
// Matching ignores case and the separators '.', '-' and '_'.
func IsSensitiveField(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	compact := strings.NewReplacer(".", "", "-", "", "_", "").Replace(lower)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) || strings.Contains(compact, strings.ReplaceAll(kw, "_", "")) {
			return true
		}
	}
	return false
}

// MaskValue masks a sensitive value, keeping the last four characters of
// long values so keys stay recognisable.
func MaskValue(value string) string {
	switch {
	case value == "":
		return ""
	case len(value) <= 8:
		return strings.Repeat(MaskChar, len(value))
	default:
		return strings.Repeat(MaskChar, 8) + value[len(value)-4:]
	}
}

// MaskMap masks sensitive values in a nested settings map.
func MaskMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for key, value := range m {
		switch v := value.(type) {
		case map[string]any:
			result[key] = MaskMap(v)
		case string:
			if IsSensitiveField(key) {
				result[key] = MaskValue(v)
			} else {
				result[key] = v
			}
		default:
			result[key] = v
		}
	}
	return result
}
