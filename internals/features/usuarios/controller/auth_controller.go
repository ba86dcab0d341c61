package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/usuarios/dto"
	"gestorhoras_backend/internals/features/usuarios/model"
	"gestorhoras_backend/internals/features/usuarios/service"
	helper "gestorhoras_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validator: validator.New()}
}

// Login autentica por matrícula y deja el par de tokens en cookies.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Matrícula y contraseña son requeridas")
	}

	var u model.UsuarioModel
	err := ctrl.DB.WithContext(c.UserContext()).
		First(&u, "usuario_matricula = ?", req.Matricula).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrCredenciales.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	if !service.CheckPassword(u.UsuarioPasswordHash, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrCredenciales.Error())
	}
	if !u.UsuarioActivo {
		return helper.JsonError(c, fiber.StatusForbidden, service.ErrCuentaInactiva.Error())
	}

	access, refresh, err := service.EmitirTokens(&u)
	if err != nil {
		log.Printf("[ERROR] emitir tokens: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
	}
	service.SetAuthCookies(c, access, refresh)

	return helper.JsonOK(c, "Inicio de sesión exitoso", dto.LoginResponse{
		Usuario:     dto.ToUsuarioResponse(&u),
		AccessToken: access,
	})
}

// Logout revoca el access token vigente y limpia las cookies.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		exp := service.ExpiracionDeToken(raw)
		if err := service.RevocarToken(ctrl.DB.WithContext(c.UserContext()), raw, exp); err != nil {
			log.Printf("[ERROR] revocar token: %v", err)
		}
	}
	if refresh := c.Cookies("refresh_token"); refresh != "" {
		exp := service.ExpiracionDeToken(refresh)
		if err := service.RevocarToken(ctrl.DB.WithContext(c.UserContext()), refresh, exp); err != nil {
			log.Printf("[ERROR] revocar refresh: %v", err)
		}
	}
	service.ClearAuthCookies(c)
	return helper.JsonOK(c, "Sesión cerrada", nil)
}

// Refresh emite un nuevo par de tokens a partir del refresh token en cookie.
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	raw := c.Cookies("refresh_token")
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No autorizado")
	}

	var revocado model.TokenBlacklistModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("token_blacklist_token = ? AND token_blacklist_expira_en > now()", raw).
		First(&revocado).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesión revocada")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	userID, err := service.ParseRefreshToken(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrRefreshInvalido.Error())
	}

	var u model.UsuarioModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&u, "usuario_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuario no encontrado")
	}
	if !u.UsuarioActivo {
		return helper.JsonError(c, fiber.StatusForbidden, service.ErrCuentaInactiva.Error())
	}

	// Rotación: el refresh usado se revoca.
	if err := service.RevocarToken(ctrl.DB.WithContext(c.UserContext()), raw, service.ExpiracionDeToken(raw)); err != nil {
		log.Printf("[ERROR] rotar refresh: %v", err)
	}

	access, refresh, err := service.EmitirTokens(&u)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo renovar la sesión")
	}
	service.SetAuthCookies(c, access, refresh)

	return helper.JsonOK(c, "Sesión renovada", dto.LoginResponse{
		Usuario:     dto.ToUsuarioResponse(&u),
		AccessToken: access,
	})
}

// Me devuelve el perfil del usuario autenticado.
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var u model.UsuarioModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&u, "usuario_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
	}
	return helper.JsonOK(c, "OK", dto.ToUsuarioResponse(&u))
}
