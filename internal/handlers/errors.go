package handlers

import (
	"errors"
	"log"

	"igames/internal/apperror"
	"igames/internal/repositories"
	"igames/internal/services"

	"github.com/gofiber/fiber/v2"
)

const serverErrorMessage = "Server error."

// ErrorHandler renders every error returned by a route or middleware into the failure envelope.
// It is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := apperror.As(err); ok {
		status := appErr.StatusCode()
		if status >= fiber.StatusInternalServerError {
			log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
		}
		return respondError(c, status, appErr.Message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return respondError(c, fiberErr.Code, fiberErr.Message)
	}

	if errors.Is(err, repositories.ErrInvalidID) {
		return respondError(c, fiber.StatusBadRequest, services.InvalidIDMessage)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return respondError(c, fiber.StatusInternalServerError, serverErrorMessage)
}
