package repository

import (
	"context"

	"github.com/google/uuid"

	archivoModel "gestorhoras_backend/internals/features/archivos/model"
	"gestorhoras_backend/internals/features/entregas/model"
	inscModel "gestorhoras_backend/internals/features/inscripciones/model"
	tareaModel "gestorhoras_backend/internals/features/tareas/model"
)

// TareaConCurso junta la tarea con el maestro titular de su curso.
type TareaConCurso struct {
	Tarea       tareaModel.TareaModel
	CursoID     uuid.UUID
	CursoActivo bool
	MaestroID   *uuid.UUID
	NombreGrupo string
}

// Repositorio reúne el acceso a datos del flujo de entregas. Los métodos de
// lectura regresan (nil, nil) cuando no hay fila; los errores son de
// infraestructura. Dentro de Transaccion los métodos marcados con bloqueo
// toman SELECT ... FOR UPDATE.
type Repositorio interface {
	// Transaccion ejecuta fn con un repositorio ligado a la transacción.
	// Si fn regresa error se revierte todo.
	Transaccion(ctx context.Context, fn func(r Repositorio) error) error

	TareaActiva(ctx context.Context, tareaID uuid.UUID) (*TareaConCurso, error)
	InscripcionActiva(ctx context.Context, alumnoID, cursoID uuid.UUID) (*inscModel.InscripcionModel, error)

	// BuscarOCrearEntrega regresa la fila (tarea, alumno) con bloqueo,
	// creándola si no existe. El booleano indica si se creó.
	BuscarOCrearEntrega(ctx context.Context, tareaID, alumnoID uuid.UUID, horas int) (*model.EntregaModel, bool, error)
	EntregaConBloqueo(ctx context.Context, entregaID uuid.UUID) (*model.EntregaModel, error)
	ActualizarEntrega(ctx context.Context, entregaID uuid.UUID, cambios map[string]any) error

	CrearAvance(ctx context.Context, a *model.AvanceModel) error
	AvanceDelAlumno(ctx context.Context, avanceID, alumnoID uuid.UUID) (*model.AvanceModel, error)
	// ExisteFinalBloqueante reporta si hay un avance final cuya entrega no
	// está rechazada; en ese caso no se aceptan más avances.
	ExisteFinalBloqueante(ctx context.Context, tareaID, alumnoID uuid.UUID) (bool, error)
	ExisteAvanceFinal(ctx context.Context, entregaID uuid.UUID) (bool, error)
	LimpiarFinales(ctx context.Context, tareaID, alumnoID uuid.UUID) error
	MarcarFinal(ctx context.Context, avanceID uuid.UUID) error
	ActualizarEstadoDeFinales(ctx context.Context, entregaID uuid.UUID, estado string) error

	InscripcionConBloqueo(ctx context.Context, alumnoID, cursoID uuid.UUID) (*inscModel.InscripcionModel, error)
	// AbonarHoras suma horas a la inscripción y al acumulado del alumno.
	AbonarHoras(ctx context.Context, inscripcionID, alumnoID uuid.UUID, horas int) error

	CrearArchivo(ctx context.Context, a *archivoModel.ArchivoModel) error
}
