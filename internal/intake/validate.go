package intake

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"travel-itinerary-service/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under the names clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a tagged struct and converts the first failure into a
// *models.MissingFieldError or *models.ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &models.ValidationError{Reason: err.Error()}
	}

	fe := fieldErrs[0]
	field := fieldPath(fe)
	if fe.Tag() == "required" {
		return &models.MissingFieldError{Field: field}
	}
	return &models.ValidationError{Field: field, Reason: reason(fe)}
}

// fieldPath drops the root struct name from the namespace, leaving
// "destinations[0].name" style paths.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return "must be formatted as " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "eqfield":
		return "passwords must match"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}
