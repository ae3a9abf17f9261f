package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// Locals keys para identidad y acceso resuelto en Fiber.
const (
	LocalUserID     = "user_id"
	LocalBusinessID = "business_id"
	LocalRole       = "role"
	LocalAccess     = "access"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, BusinessID y Role a c.Locals.
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
		userID, businessID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalBusinessID, businessID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// ResolveAccess resuelve la membresía del usuario sobre el negocio del token
// y deja el Access en c.Locals. Corre después de AuthMiddleware.
func ResolveAccess(resolver *auth.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		access, err := resolver.Resolve(c.Context(), GetUserID(c), GetBusinessID(c))
		if err != nil {
			switch {
			case err == domain.ErrUnauthorized:
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad incompleta"})
			case err == domain.ErrForbidden:
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin membresía activa en este negocio"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
			}
		}
		c.Locals(LocalAccess, access)
		return c.Next()
	}
}

// RequireHierarchyWrite corta con 403 si el rol resuelto no puede mutar la
// jerarquía (solo admin y bodeguero escriben).
func RequireHierarchyWrite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		access := GetAccess(c)
		if access == nil || !access.CanWriteHierarchy() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso de escritura"})
		}
		return c.Next()
	}
}

// RequireStockWrite corta con 403 si el rol resuelto no puede operar stock
// (admin, bodeguero y vendedor; el vendedor queda acotado por su StoreID).
func RequireStockWrite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		access := GetAccess(c)
		if access == nil || !access.CanOperateStock() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso de stock"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetBusinessID devuelve el BusinessID del contexto (después del middleware de auth).
func GetBusinessID(c *fiber.Ctx) string {
	v := c.Locals(LocalBusinessID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el Role del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetAccess devuelve el Access resuelto (después de ResolveAccess).
func GetAccess(c *fiber.Ctx) *auth.Access {
	v := c.Locals(LocalAccess)
	if v == nil {
		return nil
	}
	a, _ := v.(*auth.Access)
	return a
}
