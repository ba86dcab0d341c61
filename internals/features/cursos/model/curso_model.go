package model

import (
	"time"

	"github.com/google/uuid"
)

// Debe coincidir con el CHECK: 'servicio_social','taller'
type TipoCurso string

const (
	TipoServicioSocial TipoCurso = "servicio_social"
	TipoTaller         TipoCurso = "taller"
)

func (t TipoCurso) Valido() bool {
	return t == TipoServicioSocial || t == TipoTaller
}

type CursoModel struct {
	CursoID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:curso_id" json:"curso_id"`

	CursoNombreGrupo string    `gorm:"type:varchar(120);not null;column:curso_nombre_grupo" json:"curso_nombre_grupo"`
	CursoTipo        TipoCurso `gorm:"type:varchar(20);not null;column:curso_tipo" json:"curso_tipo"`

	// Un curso pertenece a lo más a un maestro.
	CursoMaestroID *uuid.UUID `gorm:"type:uuid;index;column:curso_maestro_id" json:"curso_maestro_id,omitempty"`

	CursoDescripcion *string `gorm:"type:text;column:curso_descripcion" json:"curso_descripcion,omitempty"`

	CursoArchivoAdjunto *string `gorm:"type:varchar(255);column:curso_archivo_adjunto" json:"curso_archivo_adjunto,omitempty"`
	CursoArchivoNombre  *string `gorm:"type:varchar(255);column:curso_archivo_nombre" json:"curso_archivo_nombre,omitempty"`

	CursoActivo bool `gorm:"not null;default:true;column:curso_activo" json:"curso_activo"`

	CursoCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:curso_created_at" json:"curso_created_at"`
	CursoUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:curso_updated_at" json:"curso_updated_at"`
}

func (CursoModel) TableName() string { return "cursos" }
