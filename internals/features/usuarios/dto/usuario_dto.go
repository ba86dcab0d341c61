package dto

import (
	"time"

	"github.com/google/uuid"

	"gestorhoras_backend/internals/features/usuarios/model"
)

type LoginRequest struct {
	Matricula string `json:"matricula" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=4"`
}

type CreateUsuarioRequest struct {
	Matricula string  `json:"matricula" validate:"required,min=3,max=50"`
	Nombre    string  `json:"nombre" validate:"required,min=2,max=100"`
	Apellidos string  `json:"apellidos" validate:"required,min=2,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	Tipo      string  `json:"tipo" validate:"required,oneof=administrador maestro alumno"`
	Activo    *bool   `json:"activo"`
}

type UpdateUsuarioRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Apellidos *string `json:"apellidos" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72"`
	Tipo      *string `json:"tipo" validate:"omitempty,oneof=administrador maestro alumno"`
	Activo    *bool   `json:"activo"`
}

type UsuarioResponse struct {
	UsuarioID       uuid.UUID `json:"usuario_id"`
	Matricula       string    `json:"matricula"`
	Nombre          string    `json:"nombre"`
	Apellidos       string    `json:"apellidos"`
	Email           string    `json:"email"`
	Tipo            string    `json:"tipo"`
	HorasAcumuladas int       `json:"horas_acumuladas"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToUsuarioResponse(u *model.UsuarioModel) UsuarioResponse {
	return UsuarioResponse{
		UsuarioID:       u.UsuarioID,
		Matricula:       u.UsuarioMatricula,
		Nombre:          u.UsuarioNombre,
		Apellidos:       u.UsuarioApellidos,
		Email:           u.UsuarioEmail,
		Tipo:            string(u.UsuarioTipo),
		HorasAcumuladas: u.UsuarioHorasAcumuladas,
		Activo:          u.UsuarioActivo,
		CreatedAt:       u.UsuarioCreatedAt,
	}
}

type LoginResponse struct {
	Usuario     UsuarioResponse `json:"usuario"`
	AccessToken string          `json:"access_token"`
}
