package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("mood", validateMood)
	_ = v.RegisterValidation("frequency", validateFrequency)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// without leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "mood":
			errs[field] = "Invalid mood value"
		case "frequency":
			errs[field] = "Invalid frequency value"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// Custom validation function for mood values
func validateMood(fl validator.FieldLevel) bool {
	mood := fl.Field().String()
	if mood == "" {
		return true
	}
	return domain.ValidMoods[domain.Mood(strings.ToLower(mood))]
}

// Custom validation function for medication frequency
func validateFrequency(fl validator.FieldLevel) bool {
	switch domain.Frequency(fl.Field().String()) {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyAsNeeded:
		return true
	case "":
		return true
	}
	return false
}
