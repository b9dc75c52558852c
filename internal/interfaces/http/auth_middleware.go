package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ucoffee-api/pkg/jwt"
)

// Locals keys que deja AuthMiddleware en el contexto de Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalToken  = "token"
)

// RevocationChecker consulta si un token fue revocado por logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware valida el Bearer Token JWT y deja UserID, rol y token en c.Locals.
// Un token revocado responde igual que uno inválido.
func AuthMiddleware(jwtSecret string, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization: Bearer <token> requerido")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.UserContext(), tokenString)
			if err != nil {
				return writeError(c, err)
			}
			if isRevoked {
				return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalToken, tokenString)
		return c.Next()
	}
}

// OptionalAuth igual que AuthMiddleware pero nunca rechaza: sin token (o con uno inválido)
// la petición sigue como anónima.
func OptionalAuth(jwtSecret string, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok || jwtSecret == "" {
			return c.Next()
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Next()
		}
		if revoked != nil {
			if isRevoked, err := revoked.IsRevoked(c.UserContext(), tokenString); err != nil || isRevoked {
				return c.Next()
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole exige que el rol del token sea uno de los indicados. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "se requiere rol "+strings.Join(roles, " o "))
	}
}

// GetUserID devuelve el UserID del contexto (0 si la petición es anónima).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devuelve el rol del contexto ("" si la petición es anónima).
func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
