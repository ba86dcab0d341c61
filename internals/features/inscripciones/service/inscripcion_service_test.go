package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"gestorhoras_backend/internals/features/inscripciones/model"
	"gestorhoras_backend/internals/features/inscripciones/repository"
)

// repoEnMemoria implementa repository.Repositorio sobre mapas, suficiente
// para ejercitar las reglas del alta sin base de datos.
type repoEnMemoria struct {
	cursos        map[uuid.UUID]*repository.CursoResumen
	inscripciones []*model.InscripcionModel
	errAlCrear    error
}

func nuevoRepoEnMemoria() *repoEnMemoria {
	return &repoEnMemoria{cursos: map[uuid.UUID]*repository.CursoResumen{}}
}

func (m *repoEnMemoria) agregarCurso(activo bool) uuid.UUID {
	id := uuid.New()
	m.cursos[id] = &repository.CursoResumen{CursoID: id, Activo: activo}
	return id
}

func (m *repoEnMemoria) BuscarCurso(_ context.Context, cursoID uuid.UUID) (*repository.CursoResumen, error) {
	return m.cursos[cursoID], nil
}

func (m *repoEnMemoria) ExisteInscripcion(_ context.Context, alumnoID, cursoID uuid.UUID) (bool, error) {
	for _, i := range m.inscripciones {
		if i.InscripcionAlumnoID == alumnoID && i.InscripcionCursoID == cursoID {
			return true, nil
		}
	}
	return false, nil
}

func (m *repoEnMemoria) Crear(_ context.Context, insc *model.InscripcionModel) error {
	if m.errAlCrear != nil {
		return m.errAlCrear
	}
	insc.InscripcionID = uuid.New()
	m.inscripciones = append(m.inscripciones, insc)
	return nil
}

func TestInscribirCreaLaInscripcion(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	curso := repo.agregarCurso(true)
	alumno := uuid.New()
	svc := NewInscripcionService(repo)

	insc, err := svc.Inscribir(context.Background(), alumno, curso)
	if err != nil {
		t.Fatalf("Inscribir: %v", err)
	}
	if insc.InscripcionAlumnoID != alumno || insc.InscripcionCursoID != curso {
		t.Error("la inscripción no quedó ligada al alumno y al curso")
	}
	if len(repo.inscripciones) != 1 {
		t.Errorf("inscripciones = %d, se esperaba 1", len(repo.inscripciones))
	}
}

func TestInscribirCursoInexistente(t *testing.T) {
	svc := NewInscripcionService(nuevoRepoEnMemoria())

	_, err := svc.Inscribir(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrCursoNoEncontrado) {
		t.Fatalf("err = %v, se esperaba ErrCursoNoEncontrado", err)
	}
}

func TestInscribirCursoInactivo(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	curso := repo.agregarCurso(false)
	svc := NewInscripcionService(repo)

	_, err := svc.Inscribir(context.Background(), uuid.New(), curso)
	if !errors.Is(err, ErrCursoInactivo) {
		t.Fatalf("err = %v, se esperaba ErrCursoInactivo", err)
	}
}

func TestInscribirDosVecesFalla(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	curso := repo.agregarCurso(true)
	alumno := uuid.New()
	svc := NewInscripcionService(repo)

	if _, err := svc.Inscribir(context.Background(), alumno, curso); err != nil {
		t.Fatalf("primera inscripción: %v", err)
	}

	_, err := svc.Inscribir(context.Background(), alumno, curso)
	if !errors.Is(err, ErrYaInscrito) {
		t.Fatalf("err = %v, se esperaba ErrYaInscrito", err)
	}
	if err.Error() != "Ya estás inscrito en este curso" {
		t.Errorf("mensaje = %q", err.Error())
	}
	if len(repo.inscripciones) != 1 {
		t.Errorf("inscripciones = %d, el duplicado no debe persistirse", len(repo.inscripciones))
	}

	// Otro alumno sí puede inscribirse al mismo curso.
	if _, err := svc.Inscribir(context.Background(), uuid.New(), curso); err != nil {
		t.Fatalf("inscripción de otro alumno: %v", err)
	}
}

func TestInscribirConIndiceUnicoDeRespaldo(t *testing.T) {
	repo := nuevoRepoEnMemoria()
	curso := repo.agregarCurso(true)
	repo.errAlCrear = errors.New(`ERROR: duplicate key value violates unique constraint "uq_inscripcion_alumno_curso" (SQLSTATE 23505)`)
	svc := NewInscripcionService(repo)

	// La verificación previa no vio la fila pero el índice único sí.
	_, err := svc.Inscribir(context.Background(), uuid.New(), curso)
	if !errors.Is(err, ErrYaInscrito) {
		t.Fatalf("err = %v, se esperaba ErrYaInscrito", err)
	}
}
