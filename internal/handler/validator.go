package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/undercity-game/undercity/internal/domain"
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

	// Register custom validations for engine enums
	_ = v.RegisterValidation("itemkind", validateItemKind)
	_ = v.RegisterValidation("slot", validateSlot)
	_ = v.RegisterValidation("metric", validateMetric)

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

// FormatValidationError formats validation errors into a user-friendly map.
// This prevents leaking internal struct names and provides cleaner error
// messages.
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
		case "itemkind":
			errs[field] = "Unknown item kind"
		case "slot":
			errs[field] = "Unknown equip slot"
		case "metric":
			errs[field] = "Unknown metric"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = "Must be positive"
		case "gte":
			errs[field] = "Must not be negative"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateItemKind(fl validator.FieldLevel) bool {
	kind := domain.ItemKind(fl.Field().String())
	if kind == "" {
		return true
	}
	return kind.IsValid()
}

func validateSlot(fl validator.FieldLevel) bool {
	slot := domain.Slot(fl.Field().String())
	if slot == "" {
		return true
	}
	return slot.IsValid()
}

func validateMetric(fl validator.FieldLevel) bool {
	metric := domain.Metric(fl.Field().String())
	if metric == "" {
		return true
	}
	return metric.IsValid()
}
