package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and converts
// failures into a fiber 422 with a readable field list.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", ve.Field(), ve.Tag()))
			}
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				"validation failed: "+strings.Join(fields, ", "))
		}
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
