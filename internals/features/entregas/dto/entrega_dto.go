package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubirAvanceRequest struct {
	TareaID    string  `json:"tarea_id" validate:"required,uuid4"`
	Comentario string  `json:"comentario" validate:"required,min=1,max=5000"`
	ArchivoURL *string `json:"archivo_url" validate:"omitempty,max=255"`
	EsFinal    bool    `json:"es_final"`
}

type EntregaDirectaRequest struct {
	TareaID    string  `json:"tarea_id" validate:"required,uuid4"`
	Comentario *string `json:"comentario" validate:"omitempty,max=5000"`
	ArchivoURL *string `json:"archivo_url" validate:"omitempty,max=255"`
}

type MarcarFinalRequest struct {
	AvanceID string `json:"avance_id" validate:"required,uuid4"`
}

type RevisarEntregaRequest struct {
	Estado       string   `json:"estado" validate:"required,oneof=revisada aprobada rechazada"`
	Comentario   *string  `json:"comentario" validate:"omitempty,max=5000"`
	Calificacion *float64 `json:"calificacion" validate:"omitempty,min=0,max=100"`
}

// EntregaDeTareaResponse es la fila que ve el maestro al listar entregas.
type EntregaDeTareaResponse struct {
	EntregaID        uuid.UUID  `json:"entrega_id"`
	TareaID          uuid.UUID  `json:"tarea_id"`
	AlumnoID         uuid.UUID  `json:"alumno_id"`
	Matricula        string     `json:"matricula"`
	AlumnoNombre     string     `json:"alumno_nombre"`
	AlumnoApellidos  string     `json:"alumno_apellidos"`
	Comentario       *string    `json:"comentario,omitempty"`
	Estado           string     `json:"estado"`
	Calificacion     *float64   `json:"calificacion,omitempty"`
	HorasRegistradas int        `json:"horas_registradas"`
	ArchivoRuta      *string    `json:"archivo_ruta,omitempty"`
	TieneFinal       bool       `json:"tiene_final"`
	TotalAvances     int64      `json:"total_avances"`
	FechaEntrega     time.Time  `json:"fecha_entrega"`
	FechaRevision    *time.Time `json:"fecha_revision,omitempty"`
}
