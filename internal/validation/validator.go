// Package validation checks service inputs with validator/v10 and reports
// the first failure as a domain validation error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vaultofgames/vault-server/internal/domain"
	domainerrors "github.com/vaultofgames/vault-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// The error is only non-nil for an empty tag name.
	_ = v.RegisterValidation("game_status", func(fl validator.FieldLevel) bool {
		return domain.GameStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// max counts runes; maxbytes counts the encoded length.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})

	return &Validator{v: v}
}

// Validate validates a struct. Fields are checked in declaration order and
// the first failure becomes the error message, e.g. "title is required".
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return domainerrors.Internal("validation failed", err)
	}

	first := validationErrs[0]
	return domainerrors.Validationf("%s %s", first.Field(), v.friendlyMessage(first))
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return "must not exceed " + e.Param()
	case "maxbytes":
		return fmt.Sprintf("must not exceed %s bytes", e.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "game_status":
		names := make([]string, len(domain.GameStatuses))
		for i, s := range domain.GameStatuses {
			names[i] = string(s)
		}
		return "must be one of: " + strings.Join(names, ", ")
	case "dive":
		return "contains an invalid entry"
	default:
		return "is invalid"
	}
}
