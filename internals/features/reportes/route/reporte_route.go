package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/reportes/controller"
)

func ReporteAlumnoRoutes(alumno fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReporteController(db)

	alumno.Get("/reporte", ctrl.MiReporte)
	alumno.Post("/reporte", ctrl.Guardar)
}
