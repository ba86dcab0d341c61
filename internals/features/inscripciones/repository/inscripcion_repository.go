package repository

import (
	"context"

	"github.com/google/uuid"

	"gestorhoras_backend/internals/features/inscripciones/model"
)

// CursoResumen es lo mínimo que el flujo de inscripción necesita del curso.
type CursoResumen struct {
	CursoID uuid.UUID
	Activo  bool
}

// Repositorio reúne el acceso a datos del alta de inscripciones. Las
// búsquedas regresan nil cuando no hay fila.
type Repositorio interface {
	BuscarCurso(ctx context.Context, cursoID uuid.UUID) (*CursoResumen, error)
	ExisteInscripcion(ctx context.Context, alumnoID, cursoID uuid.UUID) (bool, error)
	Crear(ctx context.Context, insc *model.InscripcionModel) error
}
