package response

import (
	"errors"

	apperrors "github.com/cgultunca/moneybox-withdrawal/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, "UNAUTHORIZED", message)
}

func TooManyRequests(c *fiber.Ctx) error {
	return Error(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "too many requests, please try again later")
}

// DomainError writes err with the status matching its code. Errors that
// carry no domain code are reported as internal errors without detail.
func DomainError(c *fiber.Ctx, err error) error {
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		return Error(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return Error(c, StatusFor(domainErr), domainErr.Code, domainErr.Message)
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(err *apperrors.DomainError) int {
	switch err.Code {
	case apperrors.ErrInsufficientFunds.Code, apperrors.ErrPayInLimitExceeded.Code:
		return fiber.StatusUnprocessableEntity
	case apperrors.ErrAccountNotFound.Code:
		return fiber.StatusNotFound
	case apperrors.ErrInvalidAmount.Code, apperrors.ErrSameAccount.Code:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
