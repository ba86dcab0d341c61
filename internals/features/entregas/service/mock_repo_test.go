package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	archivoModel "gestorhoras_backend/internals/features/archivos/model"
	"gestorhoras_backend/internals/features/entregas/model"
	"gestorhoras_backend/internals/features/entregas/repository"
	inscModel "gestorhoras_backend/internals/features/inscripciones/model"
	tareaModel "gestorhoras_backend/internals/features/tareas/model"
)

// repoEnMemoria implementa repository.Repositorio sobre mapas, suficiente
// para ejercitar las reglas del servicio sin base de datos.
type repoEnMemoria struct {
	tareas        map[uuid.UUID]*repository.TareaConCurso
	inscripciones map[uuid.UUID]*inscModel.InscripcionModel
	entregas      map[uuid.UUID]*model.EntregaModel
	avances       map[uuid.UUID]*model.AvanceModel
	archivos      []*archivoModel.ArchivoModel
	horasAlumno   map[uuid.UUID]int
}

func nuevoRepoEnMemoria() *repoEnMemoria {
	return &repoEnMemoria{
		tareas:        map[uuid.UUID]*repository.TareaConCurso{},
		inscripciones: map[uuid.UUID]*inscModel.InscripcionModel{},
		entregas:      map[uuid.UUID]*model.EntregaModel{},
		avances:       map[uuid.UUID]*model.AvanceModel{},
		horasAlumno:   map[uuid.UUID]int{},
	}
}

func (m *repoEnMemoria) agregarTarea(cursoID uuid.UUID, maestroID *uuid.UUID, horas int) uuid.UUID {
	id := uuid.New()
	h := horas
	m.tareas[id] = &repository.TareaConCurso{
		Tarea: tareaModel.TareaModel{
			TareaID:              id,
			TareaCursoID:         cursoID,
			TareaTitulo:          "Tarea de prueba",
			TareaAsignacionHoras: &h,
			TareaActivo:          true,
		},
		CursoID:     cursoID,
		CursoActivo: true,
		MaestroID:   maestroID,
		NombreGrupo: "Grupo A",
	}
	return id
}

func (m *repoEnMemoria) inscribir(alumnoID, cursoID uuid.UUID) *inscModel.InscripcionModel {
	insc := &inscModel.InscripcionModel{
		InscripcionID:       uuid.New(),
		InscripcionAlumnoID: alumnoID,
		InscripcionCursoID:  cursoID,
		InscripcionActivo:   true,
	}
	m.inscripciones[insc.InscripcionID] = insc
	return insc
}

func (m *repoEnMemoria) Transaccion(ctx context.Context, fn func(r repository.Repositorio) error) error {
	return fn(m)
}

func (m *repoEnMemoria) TareaActiva(_ context.Context, tareaID uuid.UUID) (*repository.TareaConCurso, error) {
	t, ok := m.tareas[tareaID]
	if !ok || !t.Tarea.TareaActivo {
		return nil, nil
	}
	return t, nil
}

func (m *repoEnMemoria) InscripcionActiva(_ context.Context, alumnoID, cursoID uuid.UUID) (*inscModel.InscripcionModel, error) {
	for _, i := range m.inscripciones {
		if i.InscripcionAlumnoID == alumnoID && i.InscripcionCursoID == cursoID && i.InscripcionActivo {
			return i, nil
		}
	}
	return nil, nil
}

func (m *repoEnMemoria) BuscarOCrearEntrega(_ context.Context, tareaID, alumnoID uuid.UUID, horas int) (*model.EntregaModel, bool, error) {
	for _, e := range m.entregas {
		if e.EntregaTareaID == tareaID && e.EntregaAlumnoID == alumnoID {
			return e, false, nil
		}
	}
	e := &model.EntregaModel{
		EntregaID:               uuid.New(),
		EntregaTareaID:          tareaID,
		EntregaAlumnoID:         alumnoID,
		EntregaEstado:           model.EstadoPendiente,
		EntregaHorasRegistradas: horas,
		EntregaFechaEntrega:     time.Now(),
	}
	m.entregas[e.EntregaID] = e
	return e, true, nil
}

func (m *repoEnMemoria) EntregaConBloqueo(_ context.Context, entregaID uuid.UUID) (*model.EntregaModel, error) {
	e, ok := m.entregas[entregaID]
	if !ok {
		return nil, nil
	}
	return e, nil
}

func (m *repoEnMemoria) ActualizarEntrega(_ context.Context, entregaID uuid.UUID, cambios map[string]any) error {
	e := m.entregas[entregaID]
	for col, val := range cambios {
		switch col {
		case "entrega_estado":
			switch v := val.(type) {
			case model.EstadoEntrega:
				e.EntregaEstado = v
			case string:
				e.EntregaEstado = model.EstadoEntrega(v)
			}
		case "entrega_comentario":
			s := val.(string)
			e.EntregaComentario = &s
		case "entrega_calificacion":
			if val == nil {
				e.EntregaCalificacion = nil
			} else {
				f := val.(float64)
				e.EntregaCalificacion = &f
			}
		case "entrega_fecha_entrega":
			e.EntregaFechaEntrega = val.(time.Time)
		case "entrega_fecha_revision":
			if val == nil {
				e.EntregaFechaRevision = nil
			} else {
				t := val.(time.Time)
				e.EntregaFechaRevision = &t
			}
		}
	}
	return nil
}

func (m *repoEnMemoria) CrearAvance(_ context.Context, a *model.AvanceModel) error {
	if a.AvanceID == uuid.Nil {
		a.AvanceID = uuid.New()
	}
	m.avances[a.AvanceID] = a
	return nil
}

func (m *repoEnMemoria) AvanceDelAlumno(_ context.Context, avanceID, alumnoID uuid.UUID) (*model.AvanceModel, error) {
	a, ok := m.avances[avanceID]
	if !ok || a.AvanceAlumnoID != alumnoID {
		return nil, nil
	}
	return a, nil
}

func (m *repoEnMemoria) ExisteFinalBloqueante(_ context.Context, tareaID, alumnoID uuid.UUID) (bool, error) {
	for _, a := range m.avances {
		if a.AvanceTareaID == tareaID && a.AvanceAlumnoID == alumnoID && a.AvanceEsFinal {
			if e, ok := m.entregas[a.AvanceEntregaID]; ok && e.EntregaEstado != model.EstadoRechazada {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *repoEnMemoria) ExisteAvanceFinal(_ context.Context, entregaID uuid.UUID) (bool, error) {
	for _, a := range m.avances {
		if a.AvanceEntregaID == entregaID && a.AvanceEsFinal {
			return true, nil
		}
	}
	return false, nil
}

func (m *repoEnMemoria) LimpiarFinales(_ context.Context, tareaID, alumnoID uuid.UUID) error {
	for _, a := range m.avances {
		if a.AvanceTareaID == tareaID && a.AvanceAlumnoID == alumnoID {
			a.AvanceEsFinal = false
		}
	}
	return nil
}

func (m *repoEnMemoria) MarcarFinal(_ context.Context, avanceID uuid.UUID) error {
	if a, ok := m.avances[avanceID]; ok {
		a.AvanceEsFinal = true
	}
	return nil
}

func (m *repoEnMemoria) ActualizarEstadoDeFinales(_ context.Context, entregaID uuid.UUID, estado string) error {
	for _, a := range m.avances {
		if a.AvanceEntregaID == entregaID && a.AvanceEsFinal {
			a.AvanceEstado = estado
		}
	}
	return nil
}

func (m *repoEnMemoria) InscripcionConBloqueo(_ context.Context, alumnoID, cursoID uuid.UUID) (*inscModel.InscripcionModel, error) {
	return m.InscripcionActiva(context.Background(), alumnoID, cursoID)
}

func (m *repoEnMemoria) AbonarHoras(_ context.Context, inscripcionID, alumnoID uuid.UUID, horas int) error {
	if i, ok := m.inscripciones[inscripcionID]; ok {
		i.InscripcionHorasCompletadas += horas
	}
	m.horasAlumno[alumnoID] += horas
	return nil
}

func (m *repoEnMemoria) CrearArchivo(_ context.Context, a *archivoModel.ArchivoModel) error {
	m.archivos = append(m.archivos, a)
	return nil
}
