package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/usuarios/controller"
)

// AuthRoutes monta los endpoints públicos de sesión bajo /api/auth.
// El login lleva su propio rate limiter, aplicado por el router raíz.
func AuthRoutes(api fiber.Router, db *gorm.DB, loginLimiter fiber.Handler) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", loginLimiter, ctrl.Login)
	auth.Post("/refresh", ctrl.Refresh)
	auth.Post("/logout", ctrl.Logout)
}

// AuthProtectedRoutes monta los endpoints de sesión que requieren token.
func AuthProtectedRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)
	api.Get("/auth/me", ctrl.Me)
}

// UsuarioAdminRoutes monta el CRUD de usuarios bajo el grupo de administrador.
func UsuarioAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUsuarioAdminController(db)

	usuarios := admin.Group("/usuarios")
	usuarios.Get("/", ctrl.List)
	usuarios.Post("/", ctrl.Create)
	usuarios.Get("/:id", ctrl.GetByID)
	usuarios.Put("/:id", ctrl.Update)
	usuarios.Delete("/:id", ctrl.Delete)
}

// HorasAlumnoRoutes monta la consulta de horas del alumno autenticado.
func HorasAlumnoRoutes(alumno fiber.Router, db *gorm.DB) {
	ctrl := controller.NewHorasController(db)
	alumno.Get("/horas", ctrl.MisHoras)
}
