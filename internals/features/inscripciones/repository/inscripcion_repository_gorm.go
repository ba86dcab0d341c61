package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	cursoModel "gestorhoras_backend/internals/features/cursos/model"
	"gestorhoras_backend/internals/features/inscripciones/model"
)

type gormRepositorio struct {
	db *gorm.DB
}

func NewGormRepositorio(db *gorm.DB) Repositorio {
	return &gormRepositorio{db: db}
}

func (r *gormRepositorio) BuscarCurso(ctx context.Context, cursoID uuid.UUID) (*CursoResumen, error) {
	var curso cursoModel.CursoModel
	err := r.db.WithContext(ctx).
		Select("curso_id", "curso_activo").
		First(&curso, "curso_id = ?", cursoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &CursoResumen{CursoID: curso.CursoID, Activo: curso.CursoActivo}, nil
}

func (r *gormRepositorio) ExisteInscripcion(ctx context.Context, alumnoID, cursoID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.InscripcionModel{}).
		Where("inscripcion_alumno_id = ? AND inscripcion_curso_id = ?", alumnoID, cursoID).
		Count(&n).Error
	return n > 0, err
}

func (r *gormRepositorio) Crear(ctx context.Context, insc *model.InscripcionModel) error {
	return r.db.WithContext(ctx).Create(insc).Error
}
