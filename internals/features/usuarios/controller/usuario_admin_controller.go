package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	archivoModel "gestorhoras_backend/internals/features/archivos/model"
	cursoModel "gestorhoras_backend/internals/features/cursos/model"
	entregaModel "gestorhoras_backend/internals/features/entregas/model"
	inscModel "gestorhoras_backend/internals/features/inscripciones/model"
	reporteModel "gestorhoras_backend/internals/features/reportes/model"
	"gestorhoras_backend/internals/features/usuarios/dto"
	"gestorhoras_backend/internals/features/usuarios/model"
	"gestorhoras_backend/internals/features/usuarios/service"
	helper "gestorhoras_backend/internals/helpers"
)

// UsuarioAdminController expone el CRUD de usuarios para el administrador.
type UsuarioAdminController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUsuarioAdminController(db *gorm.DB) *UsuarioAdminController {
	return &UsuarioAdminController{DB: db, Validator: validator.New()}
}

// List soporta ?tipo= y ?q= (busca en matrícula, nombre, apellidos y email).
func (ctrl *UsuarioAdminController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.UsuarioModel{})
	if tipo := strings.TrimSpace(c.Query("tipo")); tipo != "" {
		if !model.TipoUsuario(tipo).Valido() {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tipo de usuario inválido")
		}
		q = q.Where("usuario_tipo = ?", tipo)
	}
	if term := strings.TrimSpace(c.Query("q")); term != "" {
		like := "%" + term + "%"
		q = q.Where(
			"usuario_matricula ILIKE ? OR usuario_nombre ILIKE ? OR usuario_apellidos ILIKE ? OR usuario_email ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar usuarios")
	}

	var usuarios []model.UsuarioModel
	if err := q.Order("usuario_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&usuarios).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar usuarios")
	}

	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, dto.ToUsuarioResponse(&usuarios[i]))
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "OK", out, &pg)
}

func (ctrl *UsuarioAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var u model.UsuarioModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&u, "usuario_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	return helper.JsonOK(c, "OK", dto.ToUsuarioResponse(&u))
}

func (ctrl *UsuarioAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateUsuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Todos los campos son obligatorios")
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear el usuario")
	}

	activo := true
	if req.Activo != nil {
		activo = *req.Activo
	}
	u := model.UsuarioModel{
		UsuarioMatricula:    strings.TrimSpace(req.Matricula),
		UsuarioNombre:       strings.TrimSpace(req.Nombre),
		UsuarioApellidos:    strings.TrimSpace(req.Apellidos),
		UsuarioEmail:        strings.ToLower(strings.TrimSpace(req.Email)),
		UsuarioPasswordHash: hash,
		UsuarioTipo:         model.TipoUsuario(req.Tipo),
		UsuarioActivo:       activo,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&u).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusBadRequest, "La matrícula o el correo ya están registrados")
		}
		log.Printf("[ERROR] crear usuario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear el usuario")
	}
	return helper.JsonCreated(c, "Usuario creado exitosamente", dto.ToUsuarioResponse(&u))
}

func (ctrl *UsuarioAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var req dto.UpdateUsuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Datos inválidos")
	}

	var u model.UsuarioModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&u, "usuario_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	updates := map[string]any{}
	if req.Nombre != nil {
		updates["usuario_nombre"] = strings.TrimSpace(*req.Nombre)
	}
	if req.Apellidos != nil {
		updates["usuario_apellidos"] = strings.TrimSpace(*req.Apellidos)
	}
	if req.Email != nil {
		updates["usuario_email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Tipo != nil {
		updates["usuario_tipo"] = *req.Tipo
	}
	if req.Activo != nil {
		updates["usuario_activo"] = *req.Activo
	}
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := service.HashPassword(*req.Password)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar el usuario")
		}
		updates["usuario_password_hash"] = hash
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Sin cambios", dto.ToUsuarioResponse(&u))
	}
	updates["usuario_updated_at"] = gorm.Expr("now()")

	if err := ctrl.DB.WithContext(c.UserContext()).Model(&u).Updates(updates).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusBadRequest, "La matrícula o el correo ya están registrados")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar el usuario")
	}
	return helper.JsonUpdated(c, "Usuario actualizado exitosamente", dto.ToUsuarioResponse(&u))
}

// Delete opera en dos fases: una cuenta activa solo se desactiva; repetir
// la operación sobre una cuenta ya inactiva la elimina definitivamente con
// su cascada, todo en una transacción.
func (ctrl *UsuarioAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	actorID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	if actorID == id {
		return helper.JsonError(c, fiber.StatusBadRequest, "No puedes eliminar tu propia cuenta")
	}

	eliminado := false
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var u model.UsuarioModel
		if err := tx.First(&u, "usuario_id = ?", id).Error; err != nil {
			return err
		}

		if u.UsuarioActivo {
			// Primera fase: fuera de circulación, sin tocar sus datos.
			return tx.Model(&u).Update("usuario_activo", false).Error
		}

		eliminado = true
		if err := tx.Where("archivo_entrega_id IN (?)",
			tx.Model(&entregaModel.EntregaModel{}).
				Select("entrega_id").
				Where("entrega_alumno_id = ?", id),
		).Delete(&archivoModel.ArchivoModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("avance_alumno_id = ?", id).
			Delete(&entregaModel.AvanceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entrega_alumno_id = ?", id).
			Delete(&entregaModel.EntregaModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("inscripcion_alumno_id = ?", id).
			Delete(&inscModel.InscripcionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reporte_alumno_id = ?", id).
			Delete(&reporteModel.ReporteModel{}).Error; err != nil {
			return err
		}
		// Los cursos de un maestro eliminado quedan sin titular asignado.
		if err := tx.Model(&cursoModel.CursoModel{}).
			Where("curso_maestro_id = ?", id).
			Update("curso_maestro_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Usuario no encontrado")
		}
		log.Printf("[ERROR] eliminar usuario %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al eliminar el usuario")
	}
	if !eliminado {
		return helper.JsonDeleted(c, "Usuario desactivado exitosamente", fiber.Map{"usuario_id": id})
	}
	return helper.JsonDeleted(c, "Usuario eliminado exitosamente", fiber.Map{"usuario_id": id})
}
