package model

import (
	"time"

	"github.com/google/uuid"
)

// Debe coincidir con el CHECK: 'administrador','maestro','alumno'
type TipoUsuario string

const (
	TipoAdministrador TipoUsuario = "administrador"
	TipoMaestro       TipoUsuario = "maestro"
	TipoAlumno        TipoUsuario = "alumno"
)

func (t TipoUsuario) Valido() bool {
	switch t {
	case TipoAdministrador, TipoMaestro, TipoAlumno:
		return true
	}
	return false
}

type UsuarioModel struct {
	UsuarioID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:usuario_id" json:"usuario_id"`

	UsuarioMatricula string `gorm:"type:varchar(30);not null;uniqueIndex;column:usuario_matricula" json:"usuario_matricula"`
	UsuarioNombre    string `gorm:"type:varchar(80);not null;column:usuario_nombre" json:"usuario_nombre"`
	UsuarioApellidos string `gorm:"type:varchar(120);not null;column:usuario_apellidos" json:"usuario_apellidos"`
	UsuarioEmail     string `gorm:"type:varchar(255);not null;uniqueIndex;column:usuario_email" json:"usuario_email"`

	UsuarioPasswordHash string `gorm:"type:varchar(100);not null;column:usuario_password_hash" json:"-"`

	UsuarioTipo TipoUsuario `gorm:"type:varchar(16);not null;column:usuario_tipo" json:"usuario_tipo"`

	// Total acumulado del alumno (espejo de la suma por inscripción).
	UsuarioHorasAcumuladas int `gorm:"not null;default:0;column:usuario_horas_acumuladas" json:"usuario_horas_acumuladas"`

	UsuarioActivo bool `gorm:"not null;default:true;column:usuario_activo" json:"usuario_activo"`

	UsuarioCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:usuario_created_at" json:"usuario_created_at"`
	UsuarioUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:usuario_updated_at" json:"usuario_updated_at"`
}

func (UsuarioModel) TableName() string { return "usuarios" }
