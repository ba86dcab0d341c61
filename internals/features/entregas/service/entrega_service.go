package service

import (
	"context"
	"errors"
	"log"
	"path"
	"time"

	"github.com/google/uuid"

	archivoModel "gestorhoras_backend/internals/features/archivos/model"
	"gestorhoras_backend/internals/features/entregas/model"
	"gestorhoras_backend/internals/features/entregas/repository"
)

// Errores del flujo de entregas. El controller los traduce a HTTP y el
// mensaje llega tal cual al frontend.
var (
	ErrTareaNoEncontrada  = errors.New("Tarea no encontrada")
	ErrNoInscrito         = errors.New("No estás inscrito en este curso")
	ErrAvanceFinalMarcado = errors.New("Ya has marcado un avance final, no puedes subir más avances.")
	ErrAvanceNoEncontrado = errors.New("Avance no encontrado o no pertenece al alumno")
	ErrEntregaNoEncontrada = errors.New("Entrega no encontrada o no autorizada")
	ErrSinAvanceFinal     = errors.New("No se puede revisar la tarea: el alumno aún no ha marcado un avance final.")
	ErrEstadoInvalido     = errors.New("Estado de revisión inválido")
)

// EntregaWorkflowService implementa las reglas del ciclo avance → entrega →
// revisión → abono de horas. Toda mutación corre dentro de una transacción
// con bloqueo de fila sobre la entrega.
type EntregaWorkflowService struct {
	Repo  repository.Repositorio
	Ahora func() time.Time
}

func NewEntregaWorkflowService(repo repository.Repositorio) *EntregaWorkflowService {
	return &EntregaWorkflowService{Repo: repo, Ahora: time.Now}
}

type SubirAvanceInput struct {
	TareaID    uuid.UUID
	Comentario string
	ArchivoURL *string
	EsFinal    bool
}

type EntregaDirectaInput struct {
	TareaID    uuid.UUID
	Comentario *string
	ArchivoURL *string
}

type RevisionInput struct {
	Estado       model.EstadoEntrega
	Comentario   *string
	Calificacion *float64
}

func (s *EntregaWorkflowService) horasDeTarea(t *repository.TareaConCurso) int {
	if t.Tarea.TareaAsignacionHoras != nil {
		return *t.Tarea.TareaAsignacionHoras
	}
	return 0
}

// registrarArchivo deja constancia en archivos cuando el envío trae ruta.
func (s *EntregaWorkflowService) registrarArchivo(ctx context.Context, r repository.Repositorio, entregaID uuid.UUID, ruta *string) error {
	if ruta == nil || *ruta == "" {
		return nil
	}
	return r.CrearArchivo(ctx, &archivoModel.ArchivoModel{
		ArchivoEntregaID: entregaID,
		ArchivoNombre:    path.Base(*ruta),
		ArchivoRuta:      *ruta,
	})
}

// validarAcceso confirma tarea activa e inscripción vigente del alumno.
func (s *EntregaWorkflowService) validarAcceso(ctx context.Context, r repository.Repositorio, tareaID, alumnoID uuid.UUID) (*repository.TareaConCurso, error) {
	tarea, err := r.TareaActiva(ctx, tareaID)
	if err != nil {
		return nil, err
	}
	if tarea == nil {
		return nil, ErrTareaNoEncontrada
	}
	insc, err := r.InscripcionActiva(ctx, alumnoID, tarea.CursoID)
	if err != nil {
		return nil, err
	}
	if insc == nil {
		return nil, ErrNoInscrito
	}
	return tarea, nil
}

// SubirAvance registra una entrega parcial. Mientras exista un avance final
// cuya entrega no fue rechazada, no se aceptan más avances; el rechazo del
// maestro levanta el bloqueo.
func (s *EntregaWorkflowService) SubirAvance(ctx context.Context, alumnoID uuid.UUID, in SubirAvanceInput) (*model.AvanceModel, error) {
	var avance *model.AvanceModel
	err := s.Repo.Transaccion(ctx, func(r repository.Repositorio) error {
		tarea, err := s.validarAcceso(ctx, r, in.TareaID, alumnoID)
		if err != nil {
			return err
		}

		// El bloqueo por avance final se evalúa con la fila de entrega ya
		// tomada FOR UPDATE; dos envíos simultáneos se serializan aquí.
		entrega, creada, err := r.BuscarOCrearEntrega(ctx, in.TareaID, alumnoID, s.horasDeTarea(tarea))
		if err != nil {
			return err
		}
		bloqueado, err := r.ExisteFinalBloqueante(ctx, in.TareaID, alumnoID)
		if err != nil {
			return err
		}
		if bloqueado {
			return ErrAvanceFinalMarcado
		}

		if !creada && !in.EsFinal {
			// Cada avance refresca la fecha de actividad de la entrega.
			if err := r.ActualizarEntrega(ctx, entrega.EntregaID, map[string]any{
				"entrega_fecha_entrega": s.Ahora(),
			}); err != nil {
				return err
			}
		}

		if in.EsFinal {
			if err := r.LimpiarFinales(ctx, in.TareaID, alumnoID); err != nil {
				return err
			}
		}

		nuevo := model.AvanceModel{
			AvanceEntregaID:    entrega.EntregaID,
			AvanceTareaID:      in.TareaID,
			AvanceAlumnoID:     alumnoID,
			AvanceComentario:   in.Comentario,
			AvanceArchivoURL:   in.ArchivoURL,
			AvanceEstado:       string(model.EstadoPendiente),
			AvanceEsFinal:      in.EsFinal,
			AvanceFechaEntrega: s.Ahora(),
		}
		if err := r.CrearAvance(ctx, &nuevo); err != nil {
			return err
		}
		if err := s.registrarArchivo(ctx, r, entrega.EntregaID, in.ArchivoURL); err != nil {
			return err
		}

		if in.EsFinal {
			if err := s.reabrirEntrega(ctx, r, entrega.EntregaID); err != nil {
				return err
			}
		}
		avance = &nuevo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return avance, nil
}

// reabrirEntrega deja la entrega en pendiente con fecha de entrega nueva,
// lista para la revisión del maestro. La calificación previa se descarta.
func (s *EntregaWorkflowService) reabrirEntrega(ctx context.Context, r repository.Repositorio, entregaID uuid.UUID) error {
	return r.ActualizarEntrega(ctx, entregaID, map[string]any{
		"entrega_estado":        model.EstadoPendiente,
		"entrega_calificacion":  nil,
		"entrega_fecha_entrega": s.Ahora(),
		"entrega_fecha_revision": nil,
	})
}

// MarcarAvanceFinal promueve un avance existente a final. Cualquier otro
// final del mismo (tarea, alumno) pierde la marca, de modo que a lo más uno
// la conserva.
func (s *EntregaWorkflowService) MarcarAvanceFinal(ctx context.Context, alumnoID, avanceID uuid.UUID) (*model.AvanceModel, error) {
	var resultado *model.AvanceModel
	err := s.Repo.Transaccion(ctx, func(r repository.Repositorio) error {
		avance, err := r.AvanceDelAlumno(ctx, avanceID, alumnoID)
		if err != nil {
			return err
		}
		if avance == nil {
			return ErrAvanceNoEncontrado
		}

		if err := r.LimpiarFinales(ctx, avance.AvanceTareaID, alumnoID); err != nil {
			return err
		}
		if err := r.MarcarFinal(ctx, avanceID); err != nil {
			return err
		}
		if err := s.reabrirEntrega(ctx, r, avance.AvanceEntregaID); err != nil {
			return err
		}

		avance.AvanceEsFinal = true
		resultado = avance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// EntregarDirecto salta los avances: crea (o reutiliza) la entrega y deja un
// avance final sintético para que la revisión proceda de inmediato. La fila
// de entrega conserva su id entre reenvíos.
func (s *EntregaWorkflowService) EntregarDirecto(ctx context.Context, alumnoID uuid.UUID, in EntregaDirectaInput) (*model.EntregaModel, error) {
	var resultado *model.EntregaModel
	err := s.Repo.Transaccion(ctx, func(r repository.Repositorio) error {
		tarea, err := s.validarAcceso(ctx, r, in.TareaID, alumnoID)
		if err != nil {
			return err
		}

		// Igual que en SubirAvance, el bloqueo se evalúa con la entrega
		// tomada FOR UPDATE.
		entrega, creada, err := r.BuscarOCrearEntrega(ctx, in.TareaID, alumnoID, s.horasDeTarea(tarea))
		if err != nil {
			return err
		}
		bloqueado, err := r.ExisteFinalBloqueante(ctx, in.TareaID, alumnoID)
		if err != nil {
			return err
		}
		if bloqueado {
			return ErrAvanceFinalMarcado
		}

		ahora := s.Ahora()
		if !creada {
			cambios := map[string]any{
				"entrega_estado":        model.EstadoPendiente,
				"entrega_calificacion":  nil,
				"entrega_fecha_entrega": ahora,
				"entrega_fecha_revision": nil,
			}
			if in.Comentario != nil {
				cambios["entrega_comentario"] = *in.Comentario
			}
			if err := r.ActualizarEntrega(ctx, entrega.EntregaID, cambios); err != nil {
				return err
			}
			entrega.EntregaEstado = model.EstadoPendiente
			entrega.EntregaCalificacion = nil
			entrega.EntregaFechaEntrega = ahora
			entrega.EntregaFechaRevision = nil
			if in.Comentario != nil {
				entrega.EntregaComentario = in.Comentario
			}
		} else if in.Comentario != nil {
			if err := r.ActualizarEntrega(ctx, entrega.EntregaID, map[string]any{
				"entrega_comentario": *in.Comentario,
			}); err != nil {
				return err
			}
			entrega.EntregaComentario = in.Comentario
		}

		if err := r.LimpiarFinales(ctx, in.TareaID, alumnoID); err != nil {
			return err
		}
		comentario := "Entrega directa"
		if in.Comentario != nil && *in.Comentario != "" {
			comentario = *in.Comentario
		}
		final := model.AvanceModel{
			AvanceEntregaID:    entrega.EntregaID,
			AvanceTareaID:      in.TareaID,
			AvanceAlumnoID:     alumnoID,
			AvanceComentario:   comentario,
			AvanceArchivoURL:   in.ArchivoURL,
			AvanceEstado:       string(model.EstadoPendiente),
			AvanceEsFinal:      true,
			AvanceFechaEntrega: ahora,
		}
		if err := r.CrearAvance(ctx, &final); err != nil {
			return err
		}
		if err := s.registrarArchivo(ctx, r, entrega.EntregaID, in.ArchivoURL); err != nil {
			return err
		}
		resultado = entrega
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// RevisarEntrega fija el veredicto del maestro sobre una entrega de su
// tarea. El abono de horas ocurre solo al transitar hacia aprobada desde
// otro estado; re-aprobar no vuelve a sumar. La fecha de entrega del alumno
// no se toca.
func (s *EntregaWorkflowService) RevisarEntrega(ctx context.Context, maestroID, tareaID, entregaID uuid.UUID, in RevisionInput) (*model.EntregaModel, error) {
	if !model.EstadoRevisionValido(in.Estado) {
		return nil, ErrEstadoInvalido
	}

	var resultado *model.EntregaModel
	err := s.Repo.Transaccion(ctx, func(r repository.Repositorio) error {
		entrega, err := r.EntregaConBloqueo(ctx, entregaID)
		if err != nil {
			return err
		}
		if entrega == nil || entrega.EntregaTareaID != tareaID {
			return ErrEntregaNoEncontrada
		}

		tarea, err := r.TareaActiva(ctx, entrega.EntregaTareaID)
		if err != nil {
			return err
		}
		if tarea == nil || tarea.MaestroID == nil || *tarea.MaestroID != maestroID {
			return ErrEntregaNoEncontrada
		}

		tieneFinal, err := r.ExisteAvanceFinal(ctx, entrega.EntregaID)
		if err != nil {
			return err
		}
		if !tieneFinal {
			return ErrSinAvanceFinal
		}

		estadoAnterior := entrega.EntregaEstado
		ahora := s.Ahora()
		cambios := map[string]any{
			"entrega_estado":         in.Estado,
			"entrega_fecha_revision": ahora,
		}
		if in.Comentario != nil {
			cambios["entrega_comentario"] = *in.Comentario
		}
		if in.Calificacion != nil {
			cambios["entrega_calificacion"] = *in.Calificacion
		}
		if err := r.ActualizarEntrega(ctx, entrega.EntregaID, cambios); err != nil {
			return err
		}
		if err := r.ActualizarEstadoDeFinales(ctx, entrega.EntregaID, string(in.Estado)); err != nil {
			return err
		}

		horas := entrega.EntregaHorasRegistradas
		if horas == 0 {
			horas = s.horasDeTarea(tarea)
		}
		if in.Estado == model.EstadoAprobada && estadoAnterior != model.EstadoAprobada && horas > 0 {
			insc, err := r.InscripcionConBloqueo(ctx, entrega.EntregaAlumnoID, tarea.CursoID)
			if err != nil {
				return err
			}
			if insc == nil {
				// Sin inscripción no hay a dónde abonar; se registra y sigue.
				log.Printf("[WARN] entrega %s aprobada sin inscripción del alumno %s en curso %s",
					entrega.EntregaID, entrega.EntregaAlumnoID, tarea.CursoID)
			} else if err := r.AbonarHoras(ctx, insc.InscripcionID, entrega.EntregaAlumnoID, horas); err != nil {
				return err
			}
		}

		entrega.EntregaEstado = in.Estado
		entrega.EntregaFechaRevision = &ahora
		if in.Comentario != nil {
			entrega.EntregaComentario = in.Comentario
		}
		if in.Calificacion != nil {
			entrega.EntregaCalificacion = in.Calificacion
		}
		resultado = entrega
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}
