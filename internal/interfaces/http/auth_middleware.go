package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

// Claves de Locals cargadas por AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// ActorResolver carga el usuario identificado por el token. Lo implementa *auth.AuthUseCase.
type ActorResolver interface {
	ResolveActor(ctx context.Context, id jwt.Identity) (*entity.User, error)
}

// AuthMiddleware valida el Bearer token, resuelve el usuario y lo deja como actor
// en el contexto de la petición (c.UserContext()).
func AuthMiddleware(jwtSecret string, resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		}
		return authenticate(c, jwtSecret, resolver, tokenString)
	}
}

// OptionalAuth como AuthMiddleware pero deja pasar peticiones sin token, marcadas como anónimas.
// Un token presente e inválido sigue siendo 401.
func OptionalAuth(jwtSecret string, resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.SetUserContext(auth.Anonymous(c.UserContext()))
			return c.Next()
		}
		return authenticate(c, jwtSecret, resolver, tokenString)
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	h := c.Get("Authorization")
	if h == "" {
		return "", false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenString == "" || tokenString == h {
		return "", false
	}
	return tokenString, true
}

func authenticate(c *fiber.Ctx, jwtSecret string, resolver ActorResolver, tokenString string) error {
	id, err := jwt.Parse(jwtSecret, tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	user, err := resolver.ResolveActor(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "usuario inexistente o inactivo"})
	}
	c.Locals(LocalUserID, user.ID)
	c.Locals(LocalRole, user.Role)
	c.SetUserContext(auth.WithActor(c.UserContext(), user))
	return c.Next()
}

// RequireRole deja pasar solo si el rol del actor está en roles. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permisos insuficientes"})
	}
}

// GetUserID devuelve el user_id del token (desde Locals).
func GetUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserID).(string)
	return v
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}
