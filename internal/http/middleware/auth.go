package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"blogapi/internal/auth"
)

// IdentityLocalKey is the key under which the verified identity claims are
// stored in Fiber's context locals.
const IdentityLocalKey = "identity"

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// RequireAuth validates the Authorization bearer token and stores the decoded
// claims in context locals for downstream handlers.
func RequireAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access denied. No token provided.",
			})
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token.",
			})
		}

		c.Locals(IdentityLocalKey, claims)
		return c.Next()
	}
}

// Identity returns the claims stored by RequireAuth, or nil if absent.
func Identity(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(IdentityLocalKey).(*auth.Claims)
	return claims
}

// RequireRole allows the request through only if the verified identity's role
// is in the allowed set. It must run after RequireAuth: a missing identity is
// a broken middleware chain, answered with 401 rather than 403 because no
// permission decision was ever made.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claims := Identity(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access denied. No token provided.",
			})
		}
		if _, ok := allowed[claims.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied. Insufficient permissions.",
			})
		}
		return c.Next()
	}
}
