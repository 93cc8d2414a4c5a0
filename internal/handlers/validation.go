package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"igames/internal/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the JSON body into out and runs its validate tags.
func parseBody(c *fiber.Ctx, validate *validator.Validate, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.BadRequest("Validation failed")
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	sort.Strings(messages)
	return apperror.BadRequest("%s", strings.Join(messages, "; "))
}
