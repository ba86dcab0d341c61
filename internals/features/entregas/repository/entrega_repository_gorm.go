package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	archivoModel "gestorhoras_backend/internals/features/archivos/model"
	"gestorhoras_backend/internals/features/entregas/model"
	inscModel "gestorhoras_backend/internals/features/inscripciones/model"
	tareaModel "gestorhoras_backend/internals/features/tareas/model"
	usuarioModel "gestorhoras_backend/internals/features/usuarios/model"
)

type gormRepositorio struct {
	db *gorm.DB
}

// NewGormRepositorio construye el repositorio sobre la conexión dada.
func NewGormRepositorio(db *gorm.DB) Repositorio {
	return &gormRepositorio{db: db}
}

func (r *gormRepositorio) Transaccion(ctx context.Context, fn func(rep Repositorio) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositorio{db: tx})
	})
}

func (r *gormRepositorio) TareaActiva(ctx context.Context, tareaID uuid.UUID) (*TareaConCurso, error) {
	var tarea tareaModel.TareaModel
	err := r.db.WithContext(ctx).
		First(&tarea, "tarea_id = ? AND tarea_activo = true", tareaID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var curso struct {
		CursoMaestroID   *uuid.UUID
		CursoActivo      bool
		CursoNombreGrupo string
	}
	err = r.db.WithContext(ctx).
		Table("cursos").
		Select("curso_maestro_id", "curso_activo", "curso_nombre_grupo").
		Where("curso_id = ?", tarea.TareaCursoID).
		Scan(&curso).Error
	if err != nil {
		return nil, err
	}

	return &TareaConCurso{
		Tarea:       tarea,
		CursoID:     tarea.TareaCursoID,
		CursoActivo: curso.CursoActivo,
		MaestroID:   curso.CursoMaestroID,
		NombreGrupo: curso.CursoNombreGrupo,
	}, nil
}

func (r *gormRepositorio) InscripcionActiva(ctx context.Context, alumnoID, cursoID uuid.UUID) (*inscModel.InscripcionModel, error) {
	var insc inscModel.InscripcionModel
	err := r.db.WithContext(ctx).
		Where("inscripcion_alumno_id = ? AND inscripcion_curso_id = ? AND inscripcion_activo = true",
			alumnoID, cursoID).
		First(&insc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &insc, nil
}

func (r *gormRepositorio) BuscarOCrearEntrega(ctx context.Context, tareaID, alumnoID uuid.UUID, horas int) (*model.EntregaModel, bool, error) {
	var entrega model.EntregaModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("entrega_tarea_id = ? AND entrega_alumno_id = ?", tareaID, alumnoID).
		First(&entrega).Error
	if err == nil {
		return &entrega, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	entrega = model.EntregaModel{
		EntregaTareaID:          tareaID,
		EntregaAlumnoID:         alumnoID,
		EntregaEstado:           model.EstadoPendiente,
		EntregaHorasRegistradas: horas,
	}
	if err := r.db.WithContext(ctx).Create(&entrega).Error; err != nil {
		// Carrera con otra petición del mismo alumno: releer la fila ganadora.
		if strings.Contains(err.Error(), "duplicate key") {
			err2 := r.db.WithContext(ctx).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("entrega_tarea_id = ? AND entrega_alumno_id = ?", tareaID, alumnoID).
				First(&entrega).Error
			if err2 != nil {
				return nil, false, err2
			}
			return &entrega, false, nil
		}
		return nil, false, err
	}
	return &entrega, true, nil
}

func (r *gormRepositorio) EntregaConBloqueo(ctx context.Context, entregaID uuid.UUID) (*model.EntregaModel, error) {
	var entrega model.EntregaModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&entrega, "entrega_id = ?", entregaID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entrega, nil
}

func (r *gormRepositorio) ActualizarEntrega(ctx context.Context, entregaID uuid.UUID, cambios map[string]any) error {
	cambios["entrega_updated_at"] = gorm.Expr("now()")
	return r.db.WithContext(ctx).
		Model(&model.EntregaModel{}).
		Where("entrega_id = ?", entregaID).
		Updates(cambios).Error
}

func (r *gormRepositorio) CrearAvance(ctx context.Context, a *model.AvanceModel) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *gormRepositorio) AvanceDelAlumno(ctx context.Context, avanceID, alumnoID uuid.UUID) (*model.AvanceModel, error) {
	var avance model.AvanceModel
	err := r.db.WithContext(ctx).
		Where("avance_id = ? AND avance_alumno_id = ?", avanceID, alumnoID).
		First(&avance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &avance, nil
}

func (r *gormRepositorio) ExisteFinalBloqueante(ctx context.Context, tareaID, alumnoID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("entregas_avances").
		Joins("JOIN entregas ON entregas.entrega_id = entregas_avances.avance_entrega_id").
		Where("entregas_avances.avance_tarea_id = ? AND entregas_avances.avance_alumno_id = ?", tareaID, alumnoID).
		Where("entregas_avances.avance_es_final = true").
		Where("entregas.entrega_estado <> ?", model.EstadoRechazada).
		Count(&n).Error
	return n > 0, err
}

func (r *gormRepositorio) ExisteAvanceFinal(ctx context.Context, entregaID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AvanceModel{}).
		Where("avance_entrega_id = ? AND avance_es_final = true", entregaID).
		Count(&n).Error
	return n > 0, err
}

func (r *gormRepositorio) LimpiarFinales(ctx context.Context, tareaID, alumnoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.AvanceModel{}).
		Where("avance_tarea_id = ? AND avance_alumno_id = ? AND avance_es_final = true", tareaID, alumnoID).
		Update("avance_es_final", false).Error
}

func (r *gormRepositorio) MarcarFinal(ctx context.Context, avanceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.AvanceModel{}).
		Where("avance_id = ?", avanceID).
		Update("avance_es_final", true).Error
}

func (r *gormRepositorio) ActualizarEstadoDeFinales(ctx context.Context, entregaID uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).
		Model(&model.AvanceModel{}).
		Where("avance_entrega_id = ? AND avance_es_final = true", entregaID).
		Update("avance_estado", estado).Error
}

func (r *gormRepositorio) InscripcionConBloqueo(ctx context.Context, alumnoID, cursoID uuid.UUID) (*inscModel.InscripcionModel, error) {
	var insc inscModel.InscripcionModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("inscripcion_alumno_id = ? AND inscripcion_curso_id = ? AND inscripcion_activo = true",
			alumnoID, cursoID).
		First(&insc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &insc, nil
}

func (r *gormRepositorio) AbonarHoras(ctx context.Context, inscripcionID, alumnoID uuid.UUID, horas int) error {
	err := r.db.WithContext(ctx).
		Model(&inscModel.InscripcionModel{}).
		Where("inscripcion_id = ?", inscripcionID).
		Update("inscripcion_horas_completadas",
			gorm.Expr("inscripcion_horas_completadas + ?", horas)).Error
	if err != nil {
		return err
	}
	// Espejo en el acumulado global del alumno.
	return r.db.WithContext(ctx).
		Model(&usuarioModel.UsuarioModel{}).
		Where("usuario_id = ?", alumnoID).
		Update("usuario_horas_acumuladas",
			gorm.Expr("usuario_horas_acumuladas + ?", horas)).Error
}

func (r *gormRepositorio) CrearArchivo(ctx context.Context, a *archivoModel.ArchivoModel) error {
	return r.db.WithContext(ctx).Create(a).Error
}
