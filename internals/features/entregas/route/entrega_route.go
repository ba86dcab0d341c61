package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/entregas/controller"
)

func EntregaAlumnoRoutes(alumno fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEntregaAlumnoController(db)

	alumno.Get("/entregas", ctrl.MisEntregas)
	alumno.Post("/entregas", ctrl.Entregar)
	alumno.Get("/entregas/avances", ctrl.MisAvances)
	alumno.Post("/entregas/avances", ctrl.SubirAvance)
	alumno.Patch("/entregas/avances", ctrl.MarcarFinal)
}

func EntregaMaestroRoutes(maestro fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEntregaMaestroController(db)

	maestro.Get("/tareas/:id/entregas", ctrl.EntregasDeTarea)
	maestro.Get("/tareas/:id/avances", ctrl.AvancesDeTarea)
	maestro.Put("/tareas/:id/entregas/:entregaId/revisar", ctrl.Revisar)
}
