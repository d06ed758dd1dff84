package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sm-global/express-api/internal/application/dto"
	"github.com/sm-global/express-api/internal/domain/entity"
	"github.com/sm-global/express-api/pkg/jwt"
)

// Locals keys para la identidad del actor en Fiber.
const (
	LocalUserID = "user_id"
	LocalName   = "user_name"
	LocalRole   = "user_role"
	LocalBranch = "user_branch"
)

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalName, claims.Name)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalBranch, claims.Branch)
		return c.Next()
	}
}

// RequireRole corta la petición si el rol del actor no está en la lista.
// Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol no presente en el token"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetActor reconstruye el actor autenticado desde c.Locals.
func GetActor(c *fiber.Ctx) entity.Actor {
	return entity.Actor{
		ID:     GetUserID(c),
		Name:   GetName(c),
		Role:   GetRole(c),
		Branch: GetBranch(c),
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetName devuelve el nombre del actor.
func GetName(c *fiber.Ctx) string { return localString(c, LocalName) }

// GetRole devuelve el rol del actor.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetBranch devuelve la sucursal del actor.
func GetBranch(c *fiber.Ctx) string { return localString(c, LocalBranch) }

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
