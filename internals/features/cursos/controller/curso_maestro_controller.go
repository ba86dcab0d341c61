package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/cursos/dto"
	"gestorhoras_backend/internals/features/cursos/model"
	helper "gestorhoras_backend/internals/helpers"
)

// CursoMaestroController maneja los cursos del maestro autenticado.
type CursoMaestroController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCursoMaestroController(db *gorm.DB) *CursoMaestroController {
	return &CursoMaestroController{DB: db, Validator: validator.New()}
}

func (ctrl *CursoMaestroController) MisCursos(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}

	var cursos []dto.CursoResponse
	err = cursoBase(ctrl.DB.WithContext(c.UserContext())).
		Where("cursos.curso_maestro_id = ? AND cursos.curso_activo = true", maestroID).
		Order("cursos.curso_nombre_grupo ASC").
		Scan(&cursos).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar cursos")
	}
	return helper.JsonOK(c, "OK", cursos)
}

// Crear da de alta un grupo con el maestro de la sesión como titular.
func (ctrl *CursoMaestroController) Crear(c *fiber.Ctx) error {
	maestroID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var req dto.CreateCursoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nombre del grupo y tipo son requeridos")
	}

	curso := model.CursoModel{
		CursoNombreGrupo: strings.TrimSpace(req.NombreGrupo),
		CursoTipo:        model.TipoCurso(req.Tipo),
		CursoMaestroID:   &maestroID,
		CursoDescripcion: req.Descripcion,
		CursoActivo:      true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&curso).Error; err != nil {
		log.Printf("[ERROR] crear curso de maestro: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear el curso")
	}
	return helper.JsonCreated(c, "Curso creado exitosamente", curso)
}
