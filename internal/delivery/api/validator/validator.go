// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/errors"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so handlers can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// New returns a validator ready to be assigned to echo.Echo.Validator.
// Field names in messages follow the json tags of the request structs.
func New() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	return &echoValidator{v: v}
}

// Validate returns ErrValidationFailed with one message per failing field.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	ve, ok := errors.Find[validator.ValidationErrors](err)
	if !ok {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
