package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	inscModel "gestorhoras_backend/internals/features/inscripciones/model"
	"gestorhoras_backend/internals/features/tareas/dto"
	helper "gestorhoras_backend/internals/helpers"
)

// TareaAlumnoController lista las tareas de un curso inscrito junto con el
// estado de la entrega propia del alumno.
type TareaAlumnoController struct {
	DB *gorm.DB
}

func NewTareaAlumnoController(db *gorm.DB) *TareaAlumnoController {
	return &TareaAlumnoController{DB: db}
}

func (ctrl *TareaAlumnoController) List(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	raw := strings.TrimSpace(c.Query("curso_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "El curso es requerido")
	}
	cursoID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de curso inválido")
	}

	var insc inscModel.InscripcionModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("inscripcion_alumno_id = ? AND inscripcion_curso_id = ? AND inscripcion_activo = true",
			alumnoID, cursoID).
		First(&insc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "No estás inscrito en este curso")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var tareas []dto.TareaAlumnoResponse
	err = ctrl.DB.WithContext(c.UserContext()).
		Table("tareas").
		Select(`tareas.tarea_id,
			tareas.tarea_curso_id AS curso_id,
			tareas.tarea_titulo AS titulo,
			tareas.tarea_descripcion AS descripcion,
			tareas.tarea_prioridad AS prioridad,
			tareas.tarea_fecha_vencimiento AS fecha_vencimiento,
			tareas.tarea_asignacion_horas AS asignacion_horas,
			tareas.tarea_archivo_instrucciones AS archivo_instrucciones,
			entregas.entrega_id,
			entregas.entrega_estado,
			entregas.entrega_calificacion,
			entregas.entrega_fecha_entrega AS entrega_fecha`).
		Joins("LEFT JOIN entregas ON entregas.entrega_tarea_id = tareas.tarea_id AND entregas.entrega_alumno_id = ?", alumnoID).
		Where("tareas.tarea_curso_id = ? AND tareas.tarea_activo = true", cursoID).
		Order("tareas.tarea_fecha_vencimiento ASC NULLS LAST, tareas.tarea_created_at DESC").
		Scan(&tareas).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar tareas")
	}
	return helper.JsonOK(c, "OK", tareas)
}

// Actividades lista las tareas activas de todos los cursos inscritos,
// ordenadas por vencimiento.
func (ctrl *TareaAlumnoController) Actividades(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	actividades, err := actividadesDelAlumno(ctrl.DB.WithContext(c.UserContext()), alumnoID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar actividades")
	}
	return helper.JsonOK(c, "OK", actividades)
}

func actividadesDelAlumno(db *gorm.DB, alumnoID uuid.UUID) ([]dto.ActividadResponse, error) {
	var out []dto.ActividadResponse
	err := db.Table("tareas").
		Select(`tareas.tarea_id,
			tareas.tarea_titulo AS titulo,
			tareas.tarea_prioridad AS prioridad,
			tareas.tarea_fecha_vencimiento AS fecha_vencimiento,
			cursos.curso_id,
			cursos.curso_nombre_grupo AS nombre_grupo,
			entregas.entrega_estado`).
		Joins("JOIN cursos ON cursos.curso_id = tareas.tarea_curso_id").
		Joins(`JOIN inscripciones ON inscripciones.inscripcion_curso_id = cursos.curso_id
			AND inscripciones.inscripcion_alumno_id = ?
			AND inscripciones.inscripcion_activo = true`, alumnoID).
		Joins("LEFT JOIN entregas ON entregas.entrega_tarea_id = tareas.tarea_id AND entregas.entrega_alumno_id = ?", alumnoID).
		Where("tareas.tarea_activo = true AND cursos.curso_activo = true").
		Order("tareas.tarea_fecha_vencimiento ASC NULLS LAST, tareas.tarea_created_at DESC").
		Scan(&out).Error
	return out, err
}
