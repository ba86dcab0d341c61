// Seeds mínimos para un despliegue nuevo. Se ejecutan con SEED=true y son
// idempotentes: si el dato ya existe no se toca.
package seeds

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"gestorhoras_backend/internals/configs"
	usuarioModel "gestorhoras_backend/internals/features/usuarios/model"
	usuarioService "gestorhoras_backend/internals/features/usuarios/service"
)

func Run(db *gorm.DB) {
	if !strings.EqualFold(configs.GetEnv("SEED", "false"), "true") {
		return
	}
	if err := seedAdmin(db); err != nil {
		log.Printf("[ERROR] seed admin: %v", err)
	}
}

// seedAdmin crea el administrador inicial con las credenciales del entorno.
func seedAdmin(db *gorm.DB) error {
	matricula := configs.GetEnv("ADMIN_MATRICULA", "admin")
	password := configs.GetEnv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("⚠️ ADMIN_PASSWORD no configurado, se omite el seed del administrador")
		return nil
	}

	var existente usuarioModel.UsuarioModel
	err := db.First(&existente, "usuario_matricula = ?", matricula).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := usuarioService.HashPassword(password)
	if err != nil {
		return err
	}
	admin := usuarioModel.UsuarioModel{
		UsuarioMatricula:    matricula,
		UsuarioNombre:       "Administrador",
		UsuarioApellidos:    "del Sistema",
		UsuarioEmail:        configs.GetEnv("ADMIN_EMAIL", "admin@localhost"),
		UsuarioPasswordHash: hash,
		UsuarioTipo:         usuarioModel.TipoAdministrador,
		UsuarioActivo:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Administrador inicial creado (%s)", matricula)
	return nil
}
