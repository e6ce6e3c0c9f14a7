package middleware

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/ajg/form"
	"github.com/go-playground/validator/v10"

	apierrors "ratpdash/internal/errors"
)

// QueryValidator decodes query strings into request structs and validates
// them against their struct tags
type QueryValidator struct {
	validator *validator.Validate
}

// NewQueryValidator creates a validator reporting fields by their query names
func NewQueryValidator() *QueryValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return &QueryValidator{validator: v}
}

// Bind decodes values into dst, which should already hold the defaults, and validates it.
// Unknown keys are ignored. Errors are *apierrors.APIError with status 400.
func (q *QueryValidator) Bind(values url.Values, dst interface{}) error {
	present := url.Values{}
	for key, vs := range values {
		if len(vs) > 0 && vs[0] != "" {
			present[key] = vs[:1]
		}
	}

	decoder := form.NewDecoder(nil)
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.DecodeValues(dst, present); err != nil {
		return apierrors.NewWithDetails(400, apierrors.CodeInvalidParameter,
			"Query parameters could not be decoded", err.Error())
	}

	return q.ValidateStruct(dst)
}

// ValidateStruct validates a struct and returns validation errors
func (q *QueryValidator) ValidateStruct(v interface{}) error {
	err := q.validator.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate request: %w", err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
