package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for domain enums so handlers can declare them
//   inline on request structs.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=8") // password minimum length
		v.RegisterAlias("role", "oneof=customer vendor admin")
		v.RegisterAlias("bookingstatus", "oneof=pending in-progress completed cancelled")
		v.RegisterAlias("vendorstatus", "oneof=in-progress completed cancelled")
		v.RegisterAlias("plantier", "oneof=basic standard premium")
		v.RegisterAlias("paymentstatus", "oneof=pending paid failed")
	}
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid uuid"
	case "min", "pwd":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", paramOr(param, "8"))
		}
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return fmt.Sprintf("must be at most %s", param)
	case "gte":
		return fmt.Sprintf("must be %s or more", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "oneof", "role", "bookingstatus", "vendorstatus", "plantier", "paymentstatus":
		return "must be one of: " + strings.Join(strings.Fields(allowedFor(tag, param)), ", ")
	default:
		return "is invalid"
	}
}

func paramOr(param, def string) string {
	if param != "" {
		return param
	}
	return def
}

func allowedFor(tag, param string) string {
	switch tag {
	case "role":
		return "customer vendor admin"
	case "bookingstatus":
		return "pending in-progress completed cancelled"
	case "vendorstatus":
		return "in-progress completed cancelled"
	case "plantier":
		return "basic standard premium"
	case "paymentstatus":
		return "pending paid failed"
	}
	return param
}
