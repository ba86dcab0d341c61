package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/configs"
	archivoRoute "gestorhoras_backend/internals/features/archivos/route"
	cursoRoute "gestorhoras_backend/internals/features/cursos/route"
	entregaRoute "gestorhoras_backend/internals/features/entregas/route"
	inscRoute "gestorhoras_backend/internals/features/inscripciones/route"
	reporteRoute "gestorhoras_backend/internals/features/reportes/route"
	tareaRoute "gestorhoras_backend/internals/features/tareas/route"
	usuarioModel "gestorhoras_backend/internals/features/usuarios/model"
	usuarioRoute "gestorhoras_backend/internals/features/usuarios/route"
	"gestorhoras_backend/internals/helpers/archivos"
	"gestorhoras_backend/internals/middlewares"
	authMw "gestorhoras_backend/internals/middlewares/auth"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// SetupRoutes monta toda la superficie HTTP bajo /api, agrupada por
// audiencia: auth pública, y alumno/maestro/admin detrás del middleware
// de sesión con su verificación de rol.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	storage, err := archivos.NewStorage(configs.UploadDir, maxUploadBytes)
	if err != nil {
		log.Fatalf("❌ Storage de uploads: %v", err)
	}

	api := app.Group("/api")

	// Público
	usuarioRoute.AuthRoutes(api, db, middlewares.LoginRateLimiter())

	// Autenticado, cualquier rol
	sesion := api.Group("", authMw.AuthMiddleware(db))
	usuarioRoute.AuthProtectedRoutes(sesion, db)
	archivoRoute.ArchivoRoutes(sesion, db, storage)

	// Alumno
	alumno := sesion.Group("/alumno", authMw.RequireRol(usuarioModel.TipoAlumno))
	cursoRoute.CursoAlumnoRoutes(alumno, db)
	inscRoute.InscripcionAlumnoRoutes(alumno, db)
	tareaRoute.TareaAlumnoRoutes(alumno, db)
	entregaRoute.EntregaAlumnoRoutes(alumno, db)
	reporteRoute.ReporteAlumnoRoutes(alumno, db)
	usuarioRoute.HorasAlumnoRoutes(alumno, db)

	// Maestro
	maestro := sesion.Group("/maestro", authMw.RequireRol(usuarioModel.TipoMaestro))
	cursoRoute.CursoMaestroRoutes(maestro, db)
	inscRoute.InscripcionMaestroRoutes(maestro, db)
	tareaRoute.TareaMaestroRoutes(maestro, db)
	entregaRoute.EntregaMaestroRoutes(maestro, db)

	// Administrador
	admin := sesion.Group("/admin", authMw.RequireRol(usuarioModel.TipoAdministrador))
	usuarioRoute.UsuarioAdminRoutes(admin, db)
	cursoRoute.CursoAdminRoutes(admin, db)

	// Archivos subidos, servidos tal cual
	app.Static("/uploads", configs.UploadDir)
}
