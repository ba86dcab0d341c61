package model

import (
	"time"

	"github.com/google/uuid"
)

// Debe coincidir con el CHECK: 'baja','media','alta'
type Prioridad string

const (
	PrioridadBaja  Prioridad = "baja"
	PrioridadMedia Prioridad = "media"
	PrioridadAlta  Prioridad = "alta"
)

func (p Prioridad) Valida() bool {
	switch p {
	case PrioridadBaja, PrioridadMedia, PrioridadAlta:
		return true
	}
	return false
}

type TareaModel struct {
	TareaID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:tarea_id" json:"tarea_id"`

	TareaCursoID uuid.UUID `gorm:"type:uuid;not null;index;column:tarea_curso_id" json:"tarea_curso_id"`

	TareaTitulo      string    `gorm:"type:varchar(200);not null;column:tarea_titulo" json:"tarea_titulo"`
	TareaDescripcion *string   `gorm:"type:text;column:tarea_descripcion" json:"tarea_descripcion,omitempty"`
	TareaPrioridad   Prioridad `gorm:"type:varchar(10);not null;default:'media';column:tarea_prioridad" json:"tarea_prioridad"`

	TareaFechaVencimiento *time.Time `gorm:"type:timestamptz;column:tarea_fecha_vencimiento" json:"tarea_fecha_vencimiento,omitempty"`

	// Horas que se abonan a la inscripción cuando la entrega es aprobada.
	TareaAsignacionHoras *int `gorm:"column:tarea_asignacion_horas" json:"tarea_asignacion_horas,omitempty"`

	TareaLimiteAlumnos *int `gorm:"column:tarea_limite_alumnos" json:"tarea_limite_alumnos,omitempty"`

	TareaArchivoInstrucciones *string `gorm:"type:varchar(255);column:tarea_archivo_instrucciones" json:"tarea_archivo_instrucciones,omitempty"`

	TareaActivo bool `gorm:"not null;default:true;column:tarea_activo" json:"tarea_activo"`

	TareaCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:tarea_created_at" json:"tarea_created_at"`
	TareaUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:tarea_updated_at" json:"tarea_updated_at"`
}

func (TareaModel) TableName() string { return "tareas" }
