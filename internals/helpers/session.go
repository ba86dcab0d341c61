package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Claves en c.Locals que llena el middleware de auth.
const (
	LocUsuarioID   = "usuario_id"
	LocTipoUsuario = "tipo_usuario"
	LocMatricula   = "matricula"
)

// UsuarioIDFromLocals devuelve la identidad verificada de la sesión.
func UsuarioIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUsuarioID).(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "No autorizado")
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "No autorizado")
	}
	return id, nil
}

func TipoUsuarioFromLocals(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocTipoUsuario).(string); ok {
		return s
	}
	return ""
}

// GetRawAccessToken toma el token de Authorization: Bearer o de la cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}
