package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/configs"
	usuarioModel "gestorhoras_backend/internals/features/usuarios/model"
	helper "gestorhoras_backend/internals/helpers"
)

// AuthMiddleware valida el token de sesión (Bearer o cookie access_token),
// consulta la blacklist, verifica que el usuario siga activo y deja la
// identidad verificada en Locals para los handlers.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "No autorizado")
		}

		// Blacklist (tokens revocados en logout)
		var revocado usuarioModel.TokenBlacklistModel
		err := db.WithContext(c.UserContext()).
			Where("token_blacklist_token = ? AND token_blacklist_expira_en > now()", raw).
			First(&revocado).Error
		if err == nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Sesión revocada")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] blacklist check: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
		}

		secret := strings.TrimSpace(configs.JWTSecret)
		if secret == "" {
			log.Println("[ERROR] JWT_SECRET vacío")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
		}

		claims := jwt.MapClaims{}
		tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("método de firma inválido")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token inválido o expirado")
		}

		userID, err := extractUsuarioID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token inválido")
		}

		// El usuario pudo ser desactivado después de emitir el token.
		var u usuarioModel.UsuarioModel
		if err := db.WithContext(c.UserContext()).
			Select("usuario_id", "usuario_activo", "usuario_tipo", "usuario_matricula").
			First(&u, "usuario_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Usuario no encontrado")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
		}
		if !u.UsuarioActivo {
			return helper.JsonError(c, fiber.StatusForbidden, "Tu cuenta ha sido desactivada")
		}

		c.Locals(helper.LocUsuarioID, u.UsuarioID.String())
		c.Locals(helper.LocTipoUsuario, string(u.UsuarioTipo))
		c.Locals(helper.LocMatricula, u.UsuarioMatricula)

		return c.Next()
	}
}

// RequireRol corta con 403 si el tipo de usuario de la sesión no coincide.
func RequireRol(tipos ...usuarioModel.TipoUsuario) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actual := helper.TipoUsuarioFromLocals(c)
		for _, t := range tipos {
			if actual == string(t) {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, "No autorizado")
	}
}

func extractUsuarioID(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, k := range []string{"id", "sub"} {
		if s, ok := claims[k].(string); ok && strings.TrimSpace(s) != "" {
			return uuid.Parse(strings.TrimSpace(s))
		}
	}
	return uuid.Nil, errors.New("user id ausente en claims")
}
