package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gestorhoras_backend/internals/features/reportes/model"
	helper "gestorhoras_backend/internals/helpers"
)

// ReporteController guarda y entrega el reporte de actividades del alumno
// como documento JSON libre, uno por alumno.
type ReporteController struct {
	DB *gorm.DB
}

func NewReporteController(db *gorm.DB) *ReporteController {
	return &ReporteController{DB: db}
}

func (ctrl *ReporteController) MiReporte(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var reporte model.ReporteModel
	err = ctrl.DB.WithContext(c.UserContext()).
		First(&reporte, "reporte_alumno_id = ?", alumnoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonOK(c, "OK", nil)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar el reporte")
	}
	return helper.JsonOK(c, "OK", reporte)
}

// Guardar reemplaza el documento completo del alumno (upsert).
func (ctrl *ReporteController) Guardar(c *fiber.Ctx) error {
	alumnoID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	var datos datatypes.JSONMap
	if err := c.BodyParser(&datos); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if len(datos) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "El reporte no puede estar vacío")
	}

	reporte := model.ReporteModel{
		ReporteAlumnoID: alumnoID,
		ReporteDatos:    datos,
	}
	err = ctrl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "reporte_alumno_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"reporte_datos":      datos,
				"reporte_updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(&reporte).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al guardar el reporte")
	}
	return helper.JsonOK(c, "Reporte guardado exitosamente", reporte)
}
