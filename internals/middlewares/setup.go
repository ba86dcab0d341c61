package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"gestorhoras_backend/internals/middlewares/logger"
)

// SetupMiddlewares registra la pila global en el orden correcto:
// recovery primero, luego CORS, logging y el rate limiter general.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
