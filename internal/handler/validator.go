package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// playerNamePattern matches game account names
var playerNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,16}$`)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()
	_ = v.RegisterValidation("playername", validatePlayerName)
	_ = v.RegisterValidation("material", validateMaterial)
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

// FormatValidationError formats validation errors into a field to message map
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
		case "playername":
			errs[field] = "Invalid player name"
		case "material":
			errs[field] = "Invalid material"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte", "lte":
			errs[field] = "Out of range"
		default:
			errs[field] = "Invalid value"
		}
	}
	return errs
}

func validatePlayerName(fl validator.FieldLevel) bool {
	return playerNamePattern.MatchString(fl.Field().String())
}

func validateMaterial(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && strings.ToUpper(s) == s && !strings.ContainsAny(s, " -")
}
