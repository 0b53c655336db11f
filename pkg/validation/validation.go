package validation

import (
	"errors"
	"fmt"
	apperrors "househunt/pkg/errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Validator wraps a validator.Validate that reports fields by their JSON names.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and returns ValidationErrors on tag failures.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, err := range errs {
		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: message(err),
		})
	}
	return out
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "mongodb":
		return "must be a valid id"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", err.Param())
		}
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", err.Tag())
	}
}

// ToAppError converts a validation failure into a VALIDATION_ERROR with one
// detail entry per field. Other errors pass through AsAppError.
func ToAppError(err error) *apperrors.AppError {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Validation failed", map[string]any{"errors": []ValidationError(verrs)})
	}
	var verr ValidationError
	if errors.As(err, &verr) {
		return apperrors.Validation("Validation failed", map[string]any{"errors": []ValidationError{verr}})
	}
	return apperrors.AsAppError(err)
}
