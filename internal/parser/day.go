package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/boost/internal/model"
)

// ParseDay resolves a calendar day relative to now.
// Accepts YYYY-MM-DD, "today", "yesterday", "tomorrow", and natural language
// such as "3 days ago" or "last friday".
func ParseDay(input string, now time.Time) (model.DayKey, error) {
	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "", "today", "now":
		return model.DayKeyOf(now), nil
	case "yesterday":
		return model.DayKeyOf(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return model.DayKeyOf(now.AddDate(0, 0, 1)), nil
	}

	if key, err := model.ParseDayKey(input); err == nil {
		return key, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return "", NewDayError(input)
	}

	return model.DayKeyOf(result.Time.In(now.Location())), nil
}
