package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/configs"
	archivoModel "gestorhoras_backend/internals/features/archivos/model"
	cursoModel "gestorhoras_backend/internals/features/cursos/model"
	entregaModel "gestorhoras_backend/internals/features/entregas/model"
	inscModel "gestorhoras_backend/internals/features/inscripciones/model"
	reporteModel "gestorhoras_backend/internals/features/reportes/model"
	tareaModel "gestorhoras_backend/internals/features/tareas/model"
	usuarioModel "gestorhoras_backend/internals/features/usuarios/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Conectando a PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=gestorhoras&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // compatible con PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ No se pudo conectar a la base de datos: %v", err)
	}
	DB = db
	log.Println("✅ Base de datos conectada.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("error ajustando pool: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate crea/actualiza el esquema. El unique index (tarea, alumno) de
// entregas y el de (alumno, curso) en inscripciones viven en los tags gorm.
func Migrate() {
	err := DB.AutoMigrate(
		&usuarioModel.UsuarioModel{},
		&usuarioModel.TokenBlacklistModel{},
		&cursoModel.CursoModel{},
		&inscModel.InscripcionModel{},
		&tareaModel.TareaModel{},
		&entregaModel.EntregaModel{},
		&entregaModel.AvanceModel{},
		&archivoModel.ArchivoModel{},
		&reporteModel.ReporteModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate falló: %v", err)
	}
	log.Println("✅ Esquema migrado.")
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
