package presenter

import "github.com/gofiber/fiber/v2"

// Status codes carried in the envelope.
const (
	CodeFailure = 0
	CodeSuccess = 1
)

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Envelope is the response shape of every account endpoint that reports an outcome.
// Body is "" on failure.
type Envelope struct {
	Status Status `json:"status"`
	Body   any    `json:"body"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Success(c *fiber.Ctx, message string, body any) error {
	return JSON(c, fiber.StatusOK, Envelope{
		Status: Status{Code: CodeSuccess, Message: message},
		Body:   body,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, Envelope{
		Status: Status{Code: CodeFailure, Message: message},
		Body:   "",
	})
}
