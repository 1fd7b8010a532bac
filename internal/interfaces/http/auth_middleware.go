package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/reqctx"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a
// c.Locals. Sin token válido → 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := bearerToken(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(*errResp)
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// OptionalAuthMiddleware como AuthMiddleware pero sin exigir token: el
// visitante sin token (o con token inválido) sigue como guest. Es el
// resolutor de rol del camino público.
func OptionalAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := bearerToken(c)
		if errResp == nil {
			if userID, role, err := jwt.Parse(jwtSecret, tokenString); err == nil {
				c.Locals(LocalUserID, userID)
				c.Locals(LocalRole, role)
			}
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, *dto.ErrorResponse) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return tokenString, nil
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

// GetRole devuelve el Role del contexto; vacío si no hubo token.
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// VisitorContext construye la información del visitante (rol canónico,
// contexto administrativo, asincronía, capacidad de gestión) y la inyecta en
// el context.Context de la petición para los motores de precios y
// visibilidad. admin marca el grupo de rutas administrativas; la asincronía
// se detecta por el header X-Requested-With (refresco AJAX del admin).
func VisitorContext(managerRoles []string, admin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		req := reqctx.Request{
			Role:          role,
			Authenticated: role != "",
			Admin:         admin,
			Async:         strings.EqualFold(c.Get("X-Requested-With"), "XMLHttpRequest"),
			CanManage:     entity.RolesContain(managerRoles, role),
		}
		if req.Role == "" {
			req.Role = entity.RoleGuest
		}
		c.SetUserContext(reqctx.WithRequest(c.UserContext(), req))
		return c.Next()
	}
}

// RequireManage autoriza solo a roles con capacidad de gestión del catálogo.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireManage(managerRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		if !entity.RolesContain(managerRoles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere capacidad de gestión del catálogo"})
		}
		return c.Next()
	}
}
