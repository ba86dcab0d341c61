package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	cursoModel "gestorhoras_backend/internals/features/cursos/model"
	"gestorhoras_backend/internals/features/inscripciones/dto"
	"gestorhoras_backend/internals/features/inscripciones/repository"
	"gestorhoras_backend/internals/features/inscripciones/service"
	helper "gestorhoras_backend/internals/helpers"
)

type InscripcionController struct {
	DB        *gorm.DB
	Service   *service.InscripcionService
	Validator *validator.Validate
}

func NewInscripcionController(db *gorm.DB) *InscripcionController {
	return &InscripcionController{
		DB:        db,
		Service:   service.NewInscripcionService(repository.NewGormRepositorio(db)),
		Validator: validator.New(),
	}
}

// MisInscripciones lista los cursos en los que el alumno está inscrito.
func (ctrl *InscripcionController) MisInscripciones(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}

	var out []dto.MiInscripcionResponse
	err = ctrl.DB.WithContext(c.UserContext()).
		Table("inscripciones").
		Select(`inscripciones.inscripcion_id,
			cursos.curso_id,
			cursos.curso_nombre_grupo AS nombre_grupo,
			cursos.curso_tipo AS tipo,
			CASE WHEN usuarios.usuario_id IS NULL THEN NULL
				ELSE usuarios.usuario_nombre || ' ' || usuarios.usuario_apellidos
			END AS maestro_nombre,
			cursos.curso_descripcion AS descripcion,
			inscripciones.inscripcion_horas_completadas AS horas_completadas,
			inscripciones.inscripcion_fecha_inscripcion AS fecha_inscripcion`).
		Joins("JOIN cursos ON cursos.curso_id = inscripciones.inscripcion_curso_id").
		Joins("LEFT JOIN usuarios ON usuarios.usuario_id = cursos.curso_maestro_id").
		Where("inscripciones.inscripcion_alumno_id = ? AND inscripciones.inscripcion_activo = true", alumnoID).
		Order("inscripciones.inscripcion_fecha_inscripcion DESC").
		Scan(&out).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar inscripciones")
	}
	return helper.JsonOK(c, "OK", out)
}

// Inscribir registra al alumno en un curso activo. La inscripción duplicada
// responde 400 con el mensaje de siempre; el índice único respalda la
// verificación ante carreras.
func (ctrl *InscripcionController) Inscribir(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.CreateInscripcionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "El curso es requerido")
	}
	cursoID, err := uuid.Parse(req.CursoID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID de curso inválido")
	}

	insc, err := ctrl.Service.Inscribir(c.UserContext(), alumnoID, cursoID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCursoNoEncontrado):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCursoInactivo), errors.Is(err, service.ErrYaInscrito):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("[ERROR] inscribir alumno %s en curso %s: %v", alumnoID, cursoID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error al inscribirse")
		}
	}
	return helper.JsonCreated(c, "Inscripción exitosa", insc)
}

// AlumnosDeCurso lista el grupo de un curso del maestro autenticado.
func (ctrl *InscripcionController) AlumnosDeCurso(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	cursoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	var curso cursoModel.CursoModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Select("curso_id").
		Where("curso_id = ? AND curso_maestro_id = ?", cursoID, maestroID).
		First(&curso).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Curso no encontrado o no autorizado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	var alumnos []dto.AlumnoInscritoResponse
	err = ctrl.DB.WithContext(c.UserContext()).
		Table("inscripciones").
		Select(`usuarios.usuario_id AS alumno_id,
			usuarios.usuario_matricula AS matricula,
			usuarios.usuario_nombre AS nombre,
			usuarios.usuario_apellidos AS apellidos,
			usuarios.usuario_email AS email,
			inscripciones.inscripcion_horas_completadas AS horas_completadas,
			inscripciones.inscripcion_fecha_inscripcion AS fecha_inscripcion`).
		Joins("JOIN usuarios ON usuarios.usuario_id = inscripciones.inscripcion_alumno_id").
		Where("inscripciones.inscripcion_curso_id = ? AND inscripciones.inscripcion_activo = true", cursoID).
		Order("usuarios.usuario_apellidos ASC, usuarios.usuario_nombre ASC").
		Scan(&alumnos).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar alumnos")
	}
	return helper.JsonOK(c, "OK", alumnos)
}
