package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"gestorhoras_backend/internals/features/inscripciones/model"
	"gestorhoras_backend/internals/features/inscripciones/repository"
)

// Errores del alta de inscripciones. El controller los traduce a HTTP y el
// mensaje llega tal cual al frontend.
var (
	ErrCursoNoEncontrado = errors.New("Curso no encontrado")
	ErrCursoInactivo     = errors.New("El curso no está disponible")
	ErrYaInscrito        = errors.New("Ya estás inscrito en este curso")
)

type InscripcionService struct {
	Repo repository.Repositorio
}

func NewInscripcionService(repo repository.Repositorio) *InscripcionService {
	return &InscripcionService{Repo: repo}
}

// Inscribir registra al alumno en un curso activo. El índice único sobre
// (alumno, curso) respalda la verificación ante altas simultáneas.
func (s *InscripcionService) Inscribir(ctx context.Context, alumnoID, cursoID uuid.UUID) (*model.InscripcionModel, error) {
	curso, err := s.Repo.BuscarCurso(ctx, cursoID)
	if err != nil {
		return nil, err
	}
	if curso == nil {
		return nil, ErrCursoNoEncontrado
	}
	if !curso.Activo {
		return nil, ErrCursoInactivo
	}

	existe, err := s.Repo.ExisteInscripcion(ctx, alumnoID, cursoID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, ErrYaInscrito
	}

	insc := &model.InscripcionModel{
		InscripcionAlumnoID: alumnoID,
		InscripcionCursoID:  cursoID,
	}
	if err := s.Repo.Crear(ctx, insc); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrYaInscrito
		}
		return nil, err
	}
	return insc, nil
}
