// Package validator wraps go-playground/validator with the custom rules used
// to check SDK configuration and façade request parameters.
package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/amaas/amaas-core-sdk-go/pkg/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// resourceClasses are the AMaaS resource classes the SDK can address.
var resourceClasses = map[string]bool{
	"parties":      true,
	"positions":    true,
	"transactions": true,
}

// Get returns the shared validator with all custom rules registered.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("amaas_class", validateResourceClass)
		_ = validate.RegisterValidation("api_version", validateAPIVersion)
	})
	return validate
}

// Struct validates s and converts any failure into an ErrInvalidInput AppError
// whose message names the offending fields.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	appErr := apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid input: "+strings.Join(msgs, ", "))
	appErr.Internal = err
	return appErr
}

func validateResourceClass(fl validator.FieldLevel) bool {
	return resourceClasses[fl.Field().String()]
}

// validateAPIVersion accepts versions of the form v<major>.<minor>, e.g. v1.0.
func validateAPIVersion(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !strings.HasPrefix(s, "v") {
		return false
	}
	major, minor, ok := strings.Cut(s[1:], ".")
	return ok && isDigits(major) && isDigits(minor)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Field is a single value checked against a validator tag outside of a struct.
type Field struct {
	Name  string
	Value any
	Tag   string
}

// Fields validates each field against its tag and reports every failure in
// one ErrInvalidInput AppError.
func Fields(fields ...Field) error {
	var msgs []string
	var first error
	for _, f := range fields {
		if err := Get().Var(f.Value, f.Tag); err != nil {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", f.Name, f.Tag))
			if first == nil {
				first = err
			}
		}
	}
	if first == nil {
		return nil
	}
	appErr := apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid input: "+strings.Join(msgs, ", "))
	appErr.Internal = first
	return appErr
}
