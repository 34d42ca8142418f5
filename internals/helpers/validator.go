package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Controllers carry a `Validator interface{ Struct(any) error }` so tests
// can swap the instance; this is the shared default.
var Validate = validator.New()

// ValidationMap flattens validator.v10 errors into field → messages.
func ValidationMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		out[field] = append(out[field], validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	default:
		return "is invalid"
	}
}

// JsonValidation is a shortcut: run the struct through validator and,
// on failure, answer with the standard 422 envelope. Returns true when
// the request was already answered.
func JsonValidation(c *fiber.Ctx, v interface{ Struct(any) error }, payload any) (bool, error) {
	if err := v.Struct(payload); err != nil {
		return true, JsonValidationError(c, ValidationMap(err))
	}
	return false, nil
}
