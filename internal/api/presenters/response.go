package presenters

import (
	"Restaurant-POS-Backend/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// ServiceErrorResponse picks the HTTP status from the error's kind.
func ServiceErrorResponse(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFor(err), message, err)
}

func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindInvalidState:
		return fiber.StatusConflict
	case domain.KindPartialFailure:
		return fiber.StatusUnprocessableEntity
	case domain.KindInvalid:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
