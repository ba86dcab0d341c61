package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/inscripciones/controller"
)

func InscripcionAlumnoRoutes(alumno fiber.Router, db *gorm.DB) {
	ctrl := controller.NewInscripcionController(db)

	alumno.Get("/inscripciones", ctrl.MisInscripciones)
	alumno.Post("/inscripciones", ctrl.Inscribir)
}

func InscripcionMaestroRoutes(maestro fiber.Router, db *gorm.DB) {
	ctrl := controller.NewInscripcionController(db)
	maestro.Get("/cursos/:id/alumnos", ctrl.AlumnosDeCurso)
}
