package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/cursos/controller"
)

func CursoAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCursoAdminController(db)

	cursos := admin.Group("/cursos")
	cursos.Get("/", ctrl.List)
	cursos.Post("/", ctrl.Create)
	cursos.Get("/:id", ctrl.GetByID)
	cursos.Put("/:id", ctrl.Update)
	cursos.Delete("/:id", ctrl.Delete)
}

func CursoMaestroRoutes(maestro fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCursoMaestroController(db)
	maestro.Get("/cursos", ctrl.MisCursos)
	maestro.Post("/cursos", ctrl.Crear)
}

func CursoAlumnoRoutes(alumno fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCursoAlumnoController(db)
	alumno.Get("/cursos-disponibles", ctrl.Disponibles)
}
