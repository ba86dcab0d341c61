package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/cursos/dto"
	helper "gestorhoras_backend/internals/helpers"
)

// CursoAlumnoController lista los cursos activos en los que el alumno
// todavía no está inscrito.
type CursoAlumnoController struct {
	DB *gorm.DB
}

func NewCursoAlumnoController(db *gorm.DB) *CursoAlumnoController {
	return &CursoAlumnoController{DB: db}
}

func (ctrl *CursoAlumnoController) Disponibles(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}

	var cursos []dto.CursoResponse
	err = cursoBase(ctrl.DB.WithContext(c.UserContext())).
		Where("cursos.curso_activo = true").
		Where(`NOT EXISTS (SELECT 1 FROM inscripciones i
			WHERE i.inscripcion_curso_id = cursos.curso_id
			AND i.inscripcion_alumno_id = ?
			AND i.inscripcion_activo = true)`, alumnoID).
		Order("cursos.curso_nombre_grupo ASC").
		Scan(&cursos).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar cursos disponibles")
	}
	return helper.JsonOK(c, "OK", cursos)
}
