// Package middleware provides HTTP middleware for the fiber API.
package middleware

import (
	"errors"
	"strings"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"
	"github.com/cgultunca/moneybox-withdrawal/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ClaimsKey is the fiber Locals key under which validated claims are stored.
const ClaimsKey = "claims"

// AuthMiddleware validates HS256 bearer tokens.
type AuthMiddleware struct {
	secret []byte
	logger *zap.Logger
}

func NewAuthMiddleware(secret string, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{
		secret: []byte(secret),
		logger: logger,
	}
}

// Handler rejects requests without a valid bearer token and stores the
// token's claims in the request locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := &models.UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		m.logger.Debug("token validation failed", zap.String("path", c.Path()), zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return response.Unauthorized(c, "token expired")
		}
		return response.Unauthorized(c, "invalid token")
	}

	c.Locals(ClaimsKey, claims)
	return c.Next()
}

func (m *AuthMiddleware) keyFunc(*jwt.Token) (interface{}, error) {
	return m.secret, nil
}

// ClaimsFrom returns the claims stored by Handler, if any.
func ClaimsFrom(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*models.UserClaims)
	return claims, ok && claims != nil
}
