// Package middleware protects routes with JWT verification and resolves the
// acting principal's scope context from the token claims.
package middleware

import (
	"github.com/amirasaad/banking/pkg/authz"
	"github.com/amirasaad/banking/pkg/config"
	"github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JwtProtected verifies the bearer token and stores it under the "user" local.
func JwtProtected(cfg config.JwtConfig) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		},
	})
}

// ActorFromContext resolves the scope context of the authenticated principal
// from the verified token claims. The token carries the user id in "sub",
// the tenant in "bank_id" and the role in "role"; the role is resolved to an
// access scope exactly once here.
func ActorFromContext(c *fiber.Ctx) (authz.Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return authz.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "missing user context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "malformed token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return authz.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "invalid subject claim")
	}
	bank, _ := claims["bank_id"].(string)
	bankID, err := uuid.Parse(bank)
	if err != nil {
		return authz.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "invalid bank claim")
	}
	role, _ := claims["role"].(string)
	return authz.NewActor(userID, bankID, user.Role(role)), nil
}
