package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/entregas/dto"
	"gestorhoras_backend/internals/features/entregas/model"
	"gestorhoras_backend/internals/features/entregas/repository"
	"gestorhoras_backend/internals/features/entregas/service"
	helper "gestorhoras_backend/internals/helpers"
)

// EntregaMaestroController atiende la revisión de entregas del maestro.
type EntregaMaestroController struct {
	DB        *gorm.DB
	Service   *service.EntregaWorkflowService
	Validator *validator.Validate
}

func NewEntregaMaestroController(db *gorm.DB) *EntregaMaestroController {
	return &EntregaMaestroController{
		DB:        db,
		Service:   service.NewEntregaWorkflowService(repository.NewGormRepositorio(db)),
		Validator: validator.New(),
	}
}

// tareaDelMaestro verifica que la tarea pertenezca a un curso del maestro.
func (ctrl *EntregaMaestroController) tareaDelMaestro(c *fiber.Ctx, tareaID, maestroID uuid.UUID) error {
	var n int64
	err := ctrl.DB.WithContext(c.UserContext()).
		Table("tareas").
		Joins("JOIN cursos ON cursos.curso_id = tareas.tarea_curso_id").
		Where("tareas.tarea_id = ? AND cursos.curso_maestro_id = ?", tareaID, maestroID).
		Count(&n).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tarea no encontrada o no autorizada")
	}
	return nil
}

// EntregasDeTarea lista las entregas de una tarea con datos del alumno.
func (ctrl *EntregaMaestroController) EntregasDeTarea(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	tareaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	if err := ctrl.tareaDelMaestro(c, tareaID, maestroID); err != nil {
		return err
	}

	var entregas []dto.EntregaDeTareaResponse
	err = ctrl.DB.WithContext(c.UserContext()).
		Table("entregas").
		Select(`entregas.entrega_id,
			entregas.entrega_tarea_id AS tarea_id,
			entregas.entrega_alumno_id AS alumno_id,
			usuarios.usuario_matricula AS matricula,
			usuarios.usuario_nombre AS alumno_nombre,
			usuarios.usuario_apellidos AS alumno_apellidos,
			entregas.entrega_comentario AS comentario,
			entregas.entrega_estado AS estado,
			entregas.entrega_calificacion AS calificacion,
			entregas.entrega_horas_registradas AS horas_registradas,
			(SELECT ar.archivo_ruta FROM archivos ar
				WHERE ar.archivo_entrega_id = entregas.entrega_id
				ORDER BY ar.archivo_created_at DESC
				LIMIT 1) AS archivo_ruta,
			EXISTS (SELECT 1 FROM entregas_avances a
				WHERE a.avance_entrega_id = entregas.entrega_id
				AND a.avance_es_final = true) AS tiene_final,
			(SELECT count(*) FROM entregas_avances a
				WHERE a.avance_entrega_id = entregas.entrega_id) AS total_avances,
			entregas.entrega_fecha_entrega AS fecha_entrega,
			entregas.entrega_fecha_revision AS fecha_revision`).
		Joins("JOIN usuarios ON usuarios.usuario_id = entregas.entrega_alumno_id").
		Where("entregas.entrega_tarea_id = ?", tareaID).
		Order("entregas.entrega_fecha_entrega ASC").
		Scan(&entregas).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar entregas")
	}
	return helper.JsonOK(c, "OK", entregas)
}

// AvancesDeTarea lista todos los avances de una tarea del maestro, con los
// datos del alumno que los subió.
func (ctrl *EntregaMaestroController) AvancesDeTarea(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	tareaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	if err := ctrl.tareaDelMaestro(c, tareaID, maestroID); err != nil {
		return err
	}

	type avanceConAlumno struct {
		model.AvanceModel
		Matricula       string `json:"matricula"`
		AlumnoNombre    string `json:"alumno_nombre"`
		AlumnoApellidos string `json:"alumno_apellidos"`
	}
	var avances []avanceConAlumno
	err = ctrl.DB.WithContext(c.UserContext()).
		Table("entregas_avances").
		Select(`entregas_avances.*,
			usuarios.usuario_matricula AS matricula,
			usuarios.usuario_nombre AS alumno_nombre,
			usuarios.usuario_apellidos AS alumno_apellidos`).
		Joins("JOIN usuarios ON usuarios.usuario_id = entregas_avances.avance_alumno_id").
		Where("entregas_avances.avance_tarea_id = ?", tareaID).
		Order("entregas_avances.avance_fecha_entrega ASC").
		Scan(&avances).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar avances")
	}
	return helper.JsonOK(c, "OK", avances)
}

// Revisar fija estado, comentario y calificación de una entrega de la tarea.
func (ctrl *EntregaMaestroController) Revisar(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	tareaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	entregaID, err := uuid.Parse(c.Params("entregaId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var req dto.RevisarEntregaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Estado de revisión inválido")
	}

	entrega, err := ctrl.Service.RevisarEntrega(c.UserContext(), maestroID, tareaID, entregaID, service.RevisionInput{
		Estado:       model.EstadoEntrega(req.Estado),
		Comentario:   req.Comentario,
		Calificacion: req.Calificacion,
	})
	if err != nil {
		return errorDeFlujo(c, err)
	}
	return helper.JsonUpdated(c, "Entrega revisada exitosamente", entrega)
}
