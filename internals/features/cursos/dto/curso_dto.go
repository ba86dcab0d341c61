package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCursoRequest struct {
	NombreGrupo string  `json:"nombre_grupo" validate:"required,min=2,max=120"`
	Tipo        string  `json:"tipo" validate:"required,oneof=servicio_social taller"`
	MaestroID   *string `json:"maestro_id" validate:"omitempty,uuid4"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=5000"`
	Activo      *bool   `json:"activo"`
}

type UpdateCursoRequest struct {
	NombreGrupo *string `json:"nombre_grupo" validate:"omitempty,min=2,max=120"`
	Tipo        *string `json:"tipo" validate:"omitempty,oneof=servicio_social taller"`
	MaestroID   *string `json:"maestro_id" validate:"omitempty,uuid4"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=5000"`
	Activo      *bool   `json:"activo"`
}

// CursoResponse se llena con un Scan sobre el join cursos/usuarios, por eso
// los campos del maestro vienen aplanados.
type CursoResponse struct {
	CursoID        uuid.UUID  `json:"curso_id"`
	NombreGrupo    string     `json:"nombre_grupo"`
	Tipo           string     `json:"tipo"`
	MaestroID      *uuid.UUID `json:"maestro_id,omitempty"`
	MaestroNombre  *string    `json:"maestro_nombre,omitempty"`
	Descripcion    *string    `json:"descripcion,omitempty"`
	ArchivoAdjunto *string    `json:"archivo_adjunto,omitempty"`
	ArchivoNombre  *string    `json:"archivo_nombre,omitempty"`
	Activo         bool       `json:"activo"`
	TotalAlumnos   int64      `json:"total_alumnos"`
	CreatedAt      time.Time  `json:"created_at"`
}
