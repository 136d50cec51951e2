package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"

	"food-delivery/backend/auth"
)

const principalKey = "principal"

// RequireAuth validates the bearer token and stores the caller's principal
// in the request context. Token issuance happens in the accounts service;
// this layer only checks the signature and reads the claims.
func (h *Handler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		return fiber.ErrUnauthorized
	}

	principal, err := h.parseToken(token)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func (h *Handler) parseToken(token string) (auth.Principal, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.jwtSecret), nil
	})
	if err != nil {
		return auth.Principal{}, err
	}

	accountID, _ := claims["account_id"].(string)
	role, _ := claims["role"].(string)
	if accountID == "" {
		return auth.Principal{}, jwt.ErrInvalidKey
	}

	return auth.Principal{AccountID: accountID, Role: role}, nil
}

func principalFromCtx(c *fiber.Ctx) auth.Principal {
	principal, _ := c.Locals(principalKey).(auth.Principal)
	return principal
}
