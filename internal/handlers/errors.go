package handlers

import (
	"errors"

	apperrors "github.com/cgultunca/moneybox-withdrawal/internal/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// logFailure logs business rejections at info and everything else at error.
func logFailure(logger *zap.Logger, c *fiber.Ctx, err error) {
	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	}
	switch {
	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrPayInLimitExceeded),
		errors.Is(err, apperrors.ErrAccountNotFound):
		logger.Info("request rejected", fields...)
	default:
		logger.Error("request failed", fields...)
	}
}
