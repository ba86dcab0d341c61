package model

import (
	"time"

	"github.com/google/uuid"
)

// AvanceModel es una entrega parcial ligada a la entrega principal.
// Entre los avances de un (tarea, alumno) a lo más uno lleva es_final=true
// mientras la entrega principal no esté rechazada.
type AvanceModel struct {
	AvanceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:avance_id" json:"avance_id"`

	AvanceEntregaID uuid.UUID `gorm:"type:uuid;not null;index;column:avance_entrega_id" json:"avance_entrega_id"`
	AvanceTareaID   uuid.UUID `gorm:"type:uuid;not null;index:idx_avance_tarea_alumno;column:avance_tarea_id" json:"avance_tarea_id"`
	AvanceAlumnoID  uuid.UUID `gorm:"type:uuid;not null;index:idx_avance_tarea_alumno;column:avance_alumno_id" json:"avance_alumno_id"`

	AvanceComentario string  `gorm:"type:text;not null;column:avance_comentario" json:"avance_comentario"`
	AvanceArchivoURL *string `gorm:"type:varchar(255);column:avance_archivo_url" json:"avance_archivo_url,omitempty"`

	AvanceEstado  string `gorm:"type:varchar(16);not null;default:'pendiente';column:avance_estado" json:"avance_estado"`
	AvanceEsFinal bool   `gorm:"not null;default:false;column:avance_es_final" json:"avance_es_final"`

	AvanceFechaEntrega time.Time `gorm:"type:timestamptz;not null;default:now();column:avance_fecha_entrega" json:"avance_fecha_entrega"`
}

func (AvanceModel) TableName() string { return "entregas_avances" }
