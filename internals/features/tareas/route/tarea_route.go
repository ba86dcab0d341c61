package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/tareas/controller"
)

func TareaMaestroRoutes(maestro fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTareaMaestroController(db)

	tareas := maestro.Group("/tareas")
	tareas.Get("/", ctrl.List)
	tareas.Post("/", ctrl.Create)
	tareas.Get("/:id", ctrl.GetByID)
	tareas.Put("/:id", ctrl.Update)
	tareas.Delete("/:id", ctrl.Delete)
}

func TareaAlumnoRoutes(alumno fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTareaAlumnoController(db)
	alumno.Get("/tareas", ctrl.List)
	alumno.Get("/actividades", ctrl.Actividades)
}
