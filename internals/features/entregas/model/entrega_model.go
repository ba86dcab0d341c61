package model

import (
	"time"

	"github.com/google/uuid"
)

// Debe coincidir con el CHECK: 'pendiente','revisada','aprobada','rechazada'
type EstadoEntrega string

const (
	EstadoPendiente EstadoEntrega = "pendiente"
	EstadoRevisada  EstadoEntrega = "revisada"
	EstadoAprobada  EstadoEntrega = "aprobada"
	EstadoRechazada EstadoEntrega = "rechazada"
)

// EstadoRevisionValido acota los estados que un maestro puede fijar al revisar.
func EstadoRevisionValido(e EstadoEntrega) bool {
	switch e {
	case EstadoRevisada, EstadoAprobada, EstadoRechazada:
		return true
	}
	return false
}

// EntregaModel es la fila autoritativa por (tarea, alumno). Reenvíos
// actualizan la misma fila; el id nunca cambia.
type EntregaModel struct {
	EntregaID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:entrega_id" json:"entrega_id"`

	EntregaTareaID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_entrega_tarea_alumno;column:entrega_tarea_id" json:"entrega_tarea_id"`
	EntregaAlumnoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_entrega_tarea_alumno;index;column:entrega_alumno_id" json:"entrega_alumno_id"`

	EntregaComentario *string       `gorm:"type:text;column:entrega_comentario" json:"entrega_comentario,omitempty"`
	EntregaEstado     EstadoEntrega `gorm:"type:varchar(16);not null;default:'pendiente';column:entrega_estado" json:"entrega_estado"`

	EntregaCalificacion *float64 `gorm:"type:numeric(5,2);column:entrega_calificacion" json:"entrega_calificacion,omitempty"`

	// Snapshot de las horas de la tarea al momento de entregar.
	EntregaHorasRegistradas int `gorm:"not null;default:0;column:entrega_horas_registradas" json:"entrega_horas_registradas"`

	EntregaFechaEntrega  time.Time  `gorm:"type:timestamptz;not null;default:now();column:entrega_fecha_entrega" json:"entrega_fecha_entrega"`
	EntregaFechaRevision *time.Time `gorm:"type:timestamptz;column:entrega_fecha_revision" json:"entrega_fecha_revision,omitempty"`

	EntregaCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:entrega_created_at" json:"entrega_created_at"`
	EntregaUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:entrega_updated_at" json:"entrega_updated_at"`
}

func (EntregaModel) TableName() string { return "entregas" }
