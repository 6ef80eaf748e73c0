package common

import (
	"fmt"
	"reflect"
	"strings"

	"recruitcrm/internal/models"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo's Validate hook.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	// report json names in error details
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enums := map[string]func(string) bool{
		"client_status":      models.ValidClientStatus,
		"job_type":           models.ValidJobType,
		"job_status":         models.ValidJobStatus,
		"application_status": models.ValidApplicationStatus,
		"sheet_status":       models.ValidSheetStatus,
	}
	for tag, valid := range enums {
		valid := valid
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || valid(s)
		})
	}
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// ValidationDetails flattens validator errors into field -> message.
// The second return is false when err is not a validation failure.
func ValidationDetails(err error) (map[string]string, bool) {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		details[fe.Field()] = validationMessage(fe)
	}
	return details, true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "client_status", "job_type", "job_status", "application_status", "sheet_status":
		return fmt.Sprintf("%q is not an allowed value", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
