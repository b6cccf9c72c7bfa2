// package validation wraps go-playground/validator with the custom rules used
// by the store inputs and the HTTP request bodies.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/YusovID/skillswap-service/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	idRe     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

func init() {
	// custom_id: letters, digits, hyphens and underscores. Empty strings are
	// left to the 'required' tag.
	mustRegister("custom_id", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "" || idRe.MatchString(v)
	})

	// notblank: the value must contain something other than whitespace.
	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
	}
}

// ValidationError holds one message per failed field.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

func (v *ValidationError) Is(target error) bool { return target == apperrors.ErrValidation }

// New builds a ValidationError from ready-made messages.
func New(format string, args ...any) *ValidationError {
	return &ValidationError{Errors: []string{fmt.Sprintf(format, args...)}}
}

// ValidateStruct checks s against its `validate` tags and returns a
// *ValidationError with readable messages on failure.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate: %w", err)
	}

	messages := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		var message string

		switch fe.Tag() {
		case "custom_id":
			message = fmt.Sprintf(
				"field '%s' must contain only letters, numbers, hyphens, and underscores",
				fe.Field(),
			)
		case "notblank", "required":
			message = fmt.Sprintf("field '%s' is required", fe.Field())
		case "email":
			message = fmt.Sprintf("field '%s' must be a valid email address", fe.Field())
		case "min", "max":
			message = fmt.Sprintf("field '%s' must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		default:
			message = fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}

		messages = append(messages, message)
	}

	return &ValidationError{Errors: messages}
}
