// Package validate provides input validation helpers for Boost.
//
// Records carry `validate` struct tags that are checked with a shared
// go-playground validator. The custom tags daykey and storypoints are
// registered here.
package validate

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/model"
)

const (
	// MaxTitleLength is the maximum length for a task, ticket, habit or subtask title.
	MaxTitleLength = 256
	// MaxDescriptionLength is the maximum length for a ticket description.
	MaxDescriptionLength = 4096
	// MaxGoalLength is the maximum length for a focus goal.
	MaxGoalLength = 256
)

// validate is the shared validator instance; it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("daykey", func(fl validator.FieldLevel) bool {
		return model.DayKey(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("storypoints", func(fl validator.FieldLevel) bool {
		return model.ValidStoryPoints(int(fl.Field().Int()))
	})
}

// tagSuggestions explains how to satisfy a failed validation tag.
var tagSuggestions = map[string]string{
	"required":    "Provide a value",
	"max":         "Use a shorter value",
	"gt":          "Use a value greater than zero",
	"gte":         "Use a value of zero or more",
	"oneof":       "Use one of the listed values",
	"email":       errors.Suggestions[errors.ErrInvalidEmail],
	"daykey":      errors.Suggestions[errors.ErrInvalidDate],
	"storypoints": errors.Suggestions[errors.ErrInvalidStoryPoints],
}

// Struct validates a record or configuration struct using its tags.
// The first failing field is returned as a UserError.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.NewSystemError("validation failed", err)
	}

	e := verrs[0]
	field := strings.ToLower(e.Field())
	message := fmt.Sprintf("invalid %s", field)
	if e.Tag() == "required" {
		message = fmt.Sprintf("%s is required", field)
	} else if e.Tag() == "oneof" {
		message = fmt.Sprintf("invalid %s (allowed: %s)", field, e.Param())
	}

	return errors.NewUserErrorWithField(field, fmt.Sprint(e.Value()), message, tagSuggestions[e.Tag()])
}

// Title validates a record title.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewUserError(errors.ErrEmptyTitle.Error(), errors.Suggestions[errors.ErrEmptyTitle])
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserError(
			"title too long",
			fmt.Sprintf("Titles must be %d characters or fewer", MaxTitleLength))
	}
	return nil
}

// Priority validates a priority name.
func Priority(p string) (model.Priority, error) {
	prio := model.Priority(strings.ToLower(strings.TrimSpace(p)))
	if !prio.Valid() {
		return "", errors.NewUserErrorWithField("priority", p,
			errors.ErrInvalidPriority.Error(),
			errors.Suggestions[errors.ErrInvalidPriority])
	}
	return prio, nil
}

// Status validates a ticket status name. Labels such as "In Progress" are accepted.
func Status(s string) (model.TicketStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "-")
	norm = strings.ReplaceAll(norm, "_", "-")
	status := model.TicketStatus(norm)
	if !status.Valid() {
		return "", errors.NewUserErrorWithField("status", s,
			errors.ErrInvalidStatus.Error(),
			errors.Suggestions[errors.ErrInvalidStatus])
	}
	return status, nil
}

// StoryPoints validates a story point estimate. Zero means unestimated.
func StoryPoints(p int) error {
	if p != 0 && !model.ValidStoryPoints(p) {
		return errors.NewUserErrorWithField("points", fmt.Sprint(p),
			errors.ErrInvalidStoryPoints.Error(),
			errors.Suggestions[errors.ErrInvalidStoryPoints])
	}
	return nil
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewUserErrorWithField(field, fmt.Sprint(value),
			field+" out of range",
			fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return nil
}
