package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Response   any    `json:"response"`
	Token      string `json:"token,omitempty"`
	Message    string `json:"message,omitempty"`
}

// respond writes a successful envelope with the given HTTP status.
func respond(c *fiber.Ctx, status int, payload any, message string) error {
	return c.Status(status).JSON(Envelope{
		Success:    true,
		StatusCode: status,
		Response:   payload,
		Message:    message,
	})
}

// respondWithToken is respond for the register and login routes.
func respondWithToken(c *fiber.Ctx, status int, payload any, token, message string) error {
	return c.Status(status).JSON(Envelope{
		Success:    true,
		StatusCode: status,
		Response:   payload,
		Token:      "Bearer " + token,
		Message:    message,
	})
}

// respondError writes a failure envelope.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{
		Success:    false,
		StatusCode: status,
		Response:   message,
	})
}
