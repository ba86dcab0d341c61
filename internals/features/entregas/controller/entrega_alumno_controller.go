package controller

import (
	"errors"
	"log"
	"strings"

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

// EntregaAlumnoController atiende avances y entregas del alumno.
type EntregaAlumnoController struct {
	DB        *gorm.DB
	Service   *service.EntregaWorkflowService
	Validator *validator.Validate
}

func NewEntregaAlumnoController(db *gorm.DB) *EntregaAlumnoController {
	return &EntregaAlumnoController{
		DB:        db,
		Service:   service.NewEntregaWorkflowService(repository.NewGormRepositorio(db)),
		Validator: validator.New(),
	}
}

// errorDeFlujo traduce los errores del servicio al código HTTP esperado.
func errorDeFlujo(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTareaNoEncontrada),
		errors.Is(err, service.ErrAvanceNoEncontrado),
		errors.Is(err, service.ErrEntregaNoEncontrada):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoInscrito),
		errors.Is(err, service.ErrAvanceFinalMarcado),
		errors.Is(err, service.ErrSinAvanceFinal),
		errors.Is(err, service.ErrEstadoInvalido):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("[ERROR] flujo de entregas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
}

// SubirAvance registra una entrega parcial de la tarea.
func (ctrl *EntregaAlumnoController) SubirAvance(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.SubirAvanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tarea y comentario son requeridos")
	}
	tareaID, err := uuid.Parse(req.TareaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de tarea inválido")
	}

	avance, err := ctrl.Service.SubirAvance(c.UserContext(), alumnoID, service.SubirAvanceInput{
		TareaID:    tareaID,
		Comentario: strings.TrimSpace(req.Comentario),
		ArchivoURL: req.ArchivoURL,
		EsFinal:    req.EsFinal,
	})
	if err != nil {
		return errorDeFlujo(c, err)
	}
	return helper.JsonCreated(c, "Avance registrado exitosamente", avance)
}

// MisAvances lista los avances del alumno para una tarea.
func (ctrl *EntregaAlumnoController) MisAvances(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	raw := strings.TrimSpace(c.Query("tarea_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "La tarea es requerida")
	}
	tareaID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de tarea inválido")
	}

	// Cada avance lleva el estado actual de la entrega principal.
	type avanceConEntrega struct {
		model.AvanceModel
		EntregaEstado string `json:"entrega_estado"`
	}
	var avances []avanceConEntrega
	err = ctrl.DB.WithContext(c.UserContext()).
		Table("entregas_avances").
		Select("entregas_avances.*, entregas.entrega_estado").
		Joins("JOIN entregas ON entregas.entrega_id = entregas_avances.avance_entrega_id").
		Where("entregas_avances.avance_tarea_id = ? AND entregas_avances.avance_alumno_id = ?",
			tareaID, alumnoID).
		Order("entregas_avances.avance_fecha_entrega ASC").
		Scan(&avances).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar avances")
	}
	return helper.JsonOK(c, "OK", avances)
}

// MarcarFinal promueve un avance propio a final.
func (ctrl *EntregaAlumnoController) MarcarFinal(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.MarcarFinalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "El avance es requerido")
	}
	avanceID, err := uuid.Parse(req.AvanceID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de avance inválido")
	}

	avance, err := ctrl.Service.MarcarAvanceFinal(c.UserContext(), alumnoID, avanceID)
	if err != nil {
		return errorDeFlujo(c, err)
	}
	return helper.JsonUpdated(c, "Avance marcado como final", avance)
}

// Entregar registra la entrega directa de la tarea, sin avances previos.
func (ctrl *EntregaAlumnoController) Entregar(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.EntregaDirectaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "La tarea es requerida")
	}
	tareaID, err := uuid.Parse(req.TareaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de tarea inválido")
	}

	entrega, err := ctrl.Service.EntregarDirecto(c.UserContext(), alumnoID, service.EntregaDirectaInput{
		TareaID:    tareaID,
		Comentario: req.Comentario,
		ArchivoURL: req.ArchivoURL,
	})
	if err != nil {
		return errorDeFlujo(c, err)
	}
	return helper.JsonCreated(c, "Tarea entregada exitosamente", entrega)
}

// MisEntregas lista las entregas del alumno, opcionalmente por tarea.
func (ctrl *EntregaAlumnoController) MisEntregas(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	q := ctrl.DB.WithContext(c.UserContext()).
		Where("entrega_alumno_id = ?", alumnoID)
	if raw := strings.TrimSpace(c.Query("tarea_id")); raw != "" {
		tareaID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID de tarea inválido")
		}
		q = q.Where("entrega_tarea_id = ?", tareaID)
	}

	var entregas []model.EntregaModel
	if err := q.Order("entrega_fecha_entrega DESC").Find(&entregas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar entregas")
	}
	return helper.JsonOK(c, "OK", entregas)
}
