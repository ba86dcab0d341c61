package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTareaRequest struct {
	CursoID          string     `json:"curso_id" validate:"required,uuid4"`
	Titulo           string     `json:"titulo" validate:"required,min=2,max=200"`
	Descripcion      *string    `json:"descripcion" validate:"omitempty,max=10000"`
	Prioridad        *string    `json:"prioridad" validate:"omitempty,oneof=baja media alta"`
	FechaVencimiento *time.Time `json:"fecha_vencimiento"`
	AsignacionHoras  *int       `json:"asignacion_horas" validate:"omitempty,min=0,max=1000"`
	LimiteAlumnos    *int       `json:"limite_alumnos" validate:"omitempty,min=1"`
}

type UpdateTareaRequest struct {
	Titulo           *string    `json:"titulo" validate:"omitempty,min=2,max=200"`
	Descripcion      *string    `json:"descripcion" validate:"omitempty,max=10000"`
	Prioridad        *string    `json:"prioridad" validate:"omitempty,oneof=baja media alta"`
	FechaVencimiento *time.Time `json:"fecha_vencimiento"`
	AsignacionHoras  *int       `json:"asignacion_horas" validate:"omitempty,min=0,max=1000"`
	LimiteAlumnos    *int       `json:"limite_alumnos" validate:"omitempty,min=1"`
	Activo           *bool      `json:"activo"`
}

// TareaMaestroResponse agrega los contadores de entregas que ve el maestro.
type TareaMaestroResponse struct {
	TareaID             uuid.UUID  `json:"tarea_id"`
	CursoID             uuid.UUID  `json:"curso_id"`
	Titulo              string     `json:"titulo"`
	Descripcion         *string    `json:"descripcion,omitempty"`
	Prioridad           string     `json:"prioridad"`
	FechaVencimiento    *time.Time `json:"fecha_vencimiento,omitempty"`
	AsignacionHoras     *int       `json:"asignacion_horas,omitempty"`
	LimiteAlumnos       *int       `json:"limite_alumnos,omitempty"`
	ArchivoInstrucciones *string   `json:"archivo_instrucciones,omitempty"`
	Activo              bool       `json:"activo"`
	TotalEntregas       int64      `json:"total_entregas"`
	EntregasPendientes  int64      `json:"entregas_pendientes"`
	CreatedAt           time.Time  `json:"created_at"`
}

// TareaAlumnoResponse anexa el estado de la entrega propia del alumno.
type TareaAlumnoResponse struct {
	TareaID             uuid.UUID  `json:"tarea_id"`
	CursoID             uuid.UUID  `json:"curso_id"`
	Titulo              string     `json:"titulo"`
	Descripcion         *string    `json:"descripcion,omitempty"`
	Prioridad           string     `json:"prioridad"`
	FechaVencimiento    *time.Time `json:"fecha_vencimiento,omitempty"`
	AsignacionHoras     *int       `json:"asignacion_horas,omitempty"`
	ArchivoInstrucciones *string   `json:"archivo_instrucciones,omitempty"`
	EntregaID           *uuid.UUID `json:"entrega_id,omitempty"`
	EntregaEstado       *string    `json:"entrega_estado,omitempty"`
	EntregaCalificacion *float64   `json:"entrega_calificacion,omitempty"`
	EntregaFecha        *time.Time `json:"entrega_fecha,omitempty"`
}

// ActividadResponse es la vista plana de las tareas de todos los cursos
// inscritos del alumno.
type ActividadResponse struct {
	TareaID          uuid.UUID  `json:"tarea_id"`
	Titulo           string     `json:"titulo"`
	Prioridad        string     `json:"prioridad"`
	FechaVencimiento *time.Time `json:"fecha_vencimiento,omitempty"`
	CursoID          uuid.UUID  `json:"curso_id"`
	NombreGrupo      string     `json:"nombre_grupo"`
	EntregaEstado    *string    `json:"entrega_estado,omitempty"`
}
