package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInscripcionRequest struct {
	CursoID string `json:"curso_id" validate:"required,uuid4"`
}

// MiInscripcionResponse aplana la inscripción con los datos del curso.
type MiInscripcionResponse struct {
	InscripcionID    uuid.UUID `json:"inscripcion_id"`
	CursoID          uuid.UUID `json:"curso_id"`
	NombreGrupo      string    `json:"nombre_grupo"`
	Tipo             string    `json:"tipo"`
	MaestroNombre    *string   `json:"maestro_nombre,omitempty"`
	Descripcion      *string   `json:"descripcion,omitempty"`
	HorasCompletadas int       `json:"horas_completadas"`
	FechaInscripcion time.Time `json:"fecha_inscripcion"`
}

// AlumnoInscritoResponse es la vista del maestro sobre su grupo.
type AlumnoInscritoResponse struct {
	AlumnoID         uuid.UUID `json:"alumno_id"`
	Matricula        string    `json:"matricula"`
	Nombre           string    `json:"nombre"`
	Apellidos        string    `json:"apellidos"`
	Email            string    `json:"email"`
	HorasCompletadas int       `json:"horas_completadas"`
	FechaInscripcion time.Time `json:"fecha_inscripcion"`
}
