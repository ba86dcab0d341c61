package model

import (
	"time"

	"github.com/google/uuid"
)

type InscripcionModel struct {
	InscripcionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:inscripcion_id" json:"inscripcion_id"`

	// A lo más una inscripción por (alumno, curso).
	InscripcionAlumnoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_inscripcion_alumno_curso;column:inscripcion_alumno_id" json:"inscripcion_alumno_id"`
	InscripcionCursoID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_inscripcion_alumno_curso;index;column:inscripcion_curso_id" json:"inscripcion_curso_id"`

	// Contador monotónico; solo crece al aprobar entregas.
	InscripcionHorasCompletadas int `gorm:"not null;default:0;column:inscripcion_horas_completadas" json:"inscripcion_horas_completadas"`

	InscripcionActivo bool `gorm:"not null;default:true;column:inscripcion_activo" json:"inscripcion_activo"`

	InscripcionFechaInscripcion time.Time `gorm:"type:timestamptz;not null;default:now();column:inscripcion_fecha_inscripcion" json:"inscripcion_fecha_inscripcion"`
}

func (InscripcionModel) TableName() string { return "inscripciones" }
