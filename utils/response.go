package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var Validate = validator.New()

func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// ValidationErrorResponse renders validator failures as one readable line per
// field instead of the library's Go-flavored error string.
func ValidationErrorResponse(c *fiber.Ctx, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	lines := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		lines = append(lines, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return ErrorResponse(c, fiber.StatusBadRequest, strings.Join(lines, "; "))
}
