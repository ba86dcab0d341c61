package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/archivos/controller"
	"gestorhoras_backend/internals/helpers/archivos"
)

func ArchivoRoutes(api fiber.Router, db *gorm.DB, storage *archivos.Storage) {
	ctrl := controller.NewArchivoController(db, storage)

	grupo := api.Group("/archivos")
	grupo.Post("/", ctrl.Subir)
	grupo.Get("/entrega/:id", ctrl.DeEntrega)
}
