package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	cursoModel "gestorhoras_backend/internals/features/cursos/model"
	"gestorhoras_backend/internals/features/tareas/dto"
	"gestorhoras_backend/internals/features/tareas/model"
	helper "gestorhoras_backend/internals/helpers"
)

// TareaMaestroController administra las tareas de los cursos del maestro.
type TareaMaestroController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTareaMaestroController(db *gorm.DB) *TareaMaestroController {
	return &TareaMaestroController{DB: db, Validator: validator.New()}
}

const tareaMaestroSelect = `tareas.tarea_id,
	tareas.tarea_curso_id AS curso_id,
	tareas.tarea_titulo AS titulo,
	tareas.tarea_descripcion AS descripcion,
	tareas.tarea_prioridad AS prioridad,
	tareas.tarea_fecha_vencimiento AS fecha_vencimiento,
	tareas.tarea_asignacion_horas AS asignacion_horas,
	tareas.tarea_limite_alumnos AS limite_alumnos,
	tareas.tarea_archivo_instrucciones AS archivo_instrucciones,
	tareas.tarea_activo AS activo,
	(SELECT count(*) FROM entregas e
		WHERE e.entrega_tarea_id = tareas.tarea_id) AS total_entregas,
	(SELECT count(*) FROM entregas e
		WHERE e.entrega_tarea_id = tareas.tarea_id
		AND e.entrega_estado = 'pendiente') AS entregas_pendientes,
	tareas.tarea_created_at AS created_at`

// cursoDelMaestro valida la propiedad del curso; 404 cuando no es suyo.
func (ctrl *TareaMaestroController) cursoDelMaestro(c *fiber.Ctx, cursoID, maestroID uuid.UUID) error {
	var curso cursoModel.CursoModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Select("curso_id").
		Where("curso_id = ? AND curso_maestro_id = ?", cursoID, maestroID).
		First(&curso).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Curso no encontrado o no autorizado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	return nil
}

// tareaDelMaestro carga la tarea verificando que el curso sea del maestro.
func (ctrl *TareaMaestroController) tareaDelMaestro(c *fiber.Ctx, tareaID, maestroID uuid.UUID) (*model.TareaModel, error) {
	var tarea model.TareaModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Joins("JOIN cursos ON cursos.curso_id = tareas.tarea_curso_id").
		Where("tareas.tarea_id = ? AND cursos.curso_maestro_id = ?", tareaID, maestroID).
		First(&tarea).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Tarea no encontrada o no autorizada")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	return &tarea, nil
}

// List acepta ?curso_id= para filtrar a un solo curso del maestro.
func (ctrl *TareaMaestroController) List(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}

	q := ctrl.DB.WithContext(c.UserContext()).
		Table("tareas").
		Select(tareaMaestroSelect).
		Joins("JOIN cursos ON cursos.curso_id = tareas.tarea_curso_id").
		Where("cursos.curso_maestro_id = ?", maestroID)

	if raw := strings.TrimSpace(c.Query("curso_id")); raw != "" {
		cursoID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID de curso inválido")
		}
		q = q.Where("tareas.tarea_curso_id = ?", cursoID)
	}

	var tareas []dto.TareaMaestroResponse
	if err := q.Order("tareas.tarea_created_at DESC").Scan(&tareas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar tareas")
	}
	return helper.JsonOK(c, "OK", tareas)
}

func (ctrl *TareaMaestroController) GetByID(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	tareaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	if _, err := ctrl.tareaDelMaestro(c, tareaID, maestroID); err != nil {
		return err
	}

	var tarea dto.TareaMaestroResponse
	err = ctrl.DB.WithContext(c.UserContext()).
		Table("tareas").
		Select(tareaMaestroSelect).
		Where("tareas.tarea_id = ?", tareaID).
		Scan(&tarea).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	return helper.JsonOK(c, "OK", tarea)
}

func (ctrl *TareaMaestroController) Create(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.CreateTareaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Curso y título son requeridos")
	}
	cursoID, err := uuid.Parse(req.CursoID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de curso inválido")
	}
	if err := ctrl.cursoDelMaestro(c, cursoID, maestroID); err != nil {
		return err
	}

	tarea := model.TareaModel{
		TareaCursoID:          cursoID,
		TareaTitulo:           strings.TrimSpace(req.Titulo),
		TareaDescripcion:      req.Descripcion,
		TareaPrioridad:        model.PrioridadMedia,
		TareaFechaVencimiento: req.FechaVencimiento,
		TareaAsignacionHoras:  req.AsignacionHoras,
		TareaLimiteAlumnos:    req.LimiteAlumnos,
		TareaActivo:           true,
	}
	if req.Prioridad != nil {
		tarea.TareaPrioridad = model.Prioridad(*req.Prioridad)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&tarea).Error; err != nil {
		log.Printf("[ERROR] crear tarea: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear la tarea")
	}
	return helper.JsonCreated(c, "Tarea creada exitosamente", tarea)
}

func (ctrl *TareaMaestroController) Update(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	tareaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var req dto.UpdateTareaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Datos inválidos")
	}

	tarea, err := ctrl.tareaDelMaestro(c, tareaID, maestroID)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if req.Titulo != nil {
		updates["tarea_titulo"] = strings.TrimSpace(*req.Titulo)
	}
	if req.Descripcion != nil {
		updates["tarea_descripcion"] = *req.Descripcion
	}
	if req.Prioridad != nil {
		updates["tarea_prioridad"] = *req.Prioridad
	}
	if req.FechaVencimiento != nil {
		updates["tarea_fecha_vencimiento"] = *req.FechaVencimiento
	}
	if req.AsignacionHoras != nil {
		updates["tarea_asignacion_horas"] = *req.AsignacionHoras
	}
	if req.LimiteAlumnos != nil {
		updates["tarea_limite_alumnos"] = *req.LimiteAlumnos
	}
	if req.Activo != nil {
		updates["tarea_activo"] = *req.Activo
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Sin cambios", tarea)
	}
	updates["tarea_updated_at"] = gorm.Expr("now()")

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(tarea).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar la tarea")
	}
	return helper.JsonUpdated(c, "Tarea actualizada exitosamente", tarea)
}

// Delete da de baja la tarea; las entregas calificadas no se tocan.
func (ctrl *TareaMaestroController) Delete(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	tareaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	tarea, err := ctrl.tareaDelMaestro(c, tareaID, maestroID)
	if err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(tarea).
		Updates(map[string]any{
			"tarea_activo":     false,
			"tarea_updated_at": gorm.Expr("now()"),
		}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al eliminar la tarea")
	}
	return helper.JsonDeleted(c, "Tarea eliminada exitosamente", fiber.Map{"tarea_id": tareaID})
}
