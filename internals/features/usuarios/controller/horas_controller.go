package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/usuarios/model"
	helper "gestorhoras_backend/internals/helpers"
)

type HorasController struct {
	DB *gorm.DB
}

func NewHorasController(db *gorm.DB) *HorasController {
	return &HorasController{DB: db}
}

type horasPorCursoRow struct {
	CursoID          string `json:"curso_id"`
	CursoNombreGrupo string `json:"curso_nombre_grupo"`
	CursoTipo        string `json:"curso_tipo"`
	HorasCompletadas int    `json:"horas_completadas"`
}

// MisHoras devuelve el total acumulado del alumno y el desglose por curso.
func (ctrl *HorasController) MisHoras(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}

	var u model.UsuarioModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Select("usuario_id", "usuario_horas_acumuladas").
		First(&u, "usuario_id = ?", alumnoID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
	}

	var desglose []horasPorCursoRow
	err = ctrl.DB.WithContext(c.UserContext()).
		Table("inscripciones").
		Select(`cursos.curso_id,
			cursos.curso_nombre_grupo,
			cursos.curso_tipo,
			inscripciones.inscripcion_horas_completadas AS horas_completadas`).
		Joins("JOIN cursos ON cursos.curso_id = inscripciones.inscripcion_curso_id").
		Where("inscripciones.inscripcion_alumno_id = ? AND inscripciones.inscripcion_activo = true", alumnoID).
		Order("cursos.curso_nombre_grupo ASC").
		Scan(&desglose).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar horas")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"horas_acumuladas": u.UsuarioHorasAcumuladas,
		"por_curso":        desglose,
	})
}
