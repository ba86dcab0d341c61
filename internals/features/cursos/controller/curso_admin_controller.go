package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/cursos/dto"
	"gestorhoras_backend/internals/features/cursos/model"
	usuarioModel "gestorhoras_backend/internals/features/usuarios/model"
	helper "gestorhoras_backend/internals/helpers"
)

// CursoAdminController expone el CRUD de cursos para el administrador.
type CursoAdminController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCursoAdminController(db *gorm.DB) *CursoAdminController {
	return &CursoAdminController{DB: db, Validator: validator.New()}
}

const cursoSelect = `cursos.curso_id,
	cursos.curso_nombre_grupo AS nombre_grupo,
	cursos.curso_tipo AS tipo,
	cursos.curso_maestro_id AS maestro_id,
	CASE WHEN usuarios.usuario_id IS NULL THEN NULL
		ELSE usuarios.usuario_nombre || ' ' || usuarios.usuario_apellidos
	END AS maestro_nombre,
	cursos.curso_descripcion AS descripcion,
	cursos.curso_archivo_adjunto AS archivo_adjunto,
	cursos.curso_archivo_nombre AS archivo_nombre,
	cursos.curso_activo AS activo,
	(SELECT count(*) FROM inscripciones i
		WHERE i.inscripcion_curso_id = cursos.curso_id
		AND i.inscripcion_activo = true) AS total_alumnos,
	cursos.curso_created_at AS created_at`

func cursoBase(db *gorm.DB) *gorm.DB {
	return db.Table("cursos").
		Select(cursoSelect).
		Joins("LEFT JOIN usuarios ON usuarios.usuario_id = cursos.curso_maestro_id")
}

func (ctrl *CursoAdminController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := cursoBase(ctrl.DB.WithContext(c.UserContext()))
	if tipo := strings.TrimSpace(c.Query("tipo")); tipo != "" {
		if !model.TipoCurso(tipo).Valido() {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tipo de curso inválido")
		}
		q = q.Where("cursos.curso_tipo = ?", tipo)
	}
	if term := strings.TrimSpace(c.Query("q")); term != "" {
		q = q.Where("cursos.curso_nombre_grupo ILIKE ?", "%"+term+"%")
	}

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.CursoModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar cursos")
	}

	var cursos []dto.CursoResponse
	if err := q.Order("cursos.curso_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&cursos).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar cursos")
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "OK", cursos, &pg)
}

func (ctrl *CursoAdminController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var curso dto.CursoResponse
	err = cursoBase(ctrl.DB.WithContext(c.UserContext())).
		Where("cursos.curso_id = ?", id).
		Scan(&curso).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	if curso.CursoID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Curso no encontrado")
	}
	return helper.JsonOK(c, "OK", curso)
}

func (ctrl *CursoAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateCursoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nombre del grupo y tipo son requeridos")
	}

	curso := model.CursoModel{
		CursoNombreGrupo: strings.TrimSpace(req.NombreGrupo),
		CursoTipo:        model.TipoCurso(req.Tipo),
		CursoDescripcion: req.Descripcion,
		CursoActivo:      true,
	}
	if req.Activo != nil {
		curso.CursoActivo = *req.Activo
	}
	if req.MaestroID != nil {
		maestroID, err := ctrl.resolverMaestro(c, *req.MaestroID)
		if err != nil {
			return err
		}
		curso.CursoMaestroID = maestroID
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&curso).Error; err != nil {
		log.Printf("[ERROR] crear curso: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al crear el curso")
	}
	return helper.JsonCreated(c, "Curso creado exitosamente", curso)
}

func (ctrl *CursoAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	var req dto.UpdateCursoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Datos inválidos")
	}

	var curso model.CursoModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&curso, "curso_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Curso no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}

	updates := map[string]any{}
	if req.NombreGrupo != nil {
		updates["curso_nombre_grupo"] = strings.TrimSpace(*req.NombreGrupo)
	}
	if req.Tipo != nil {
		updates["curso_tipo"] = *req.Tipo
	}
	if req.Descripcion != nil {
		updates["curso_descripcion"] = *req.Descripcion
	}
	if req.Activo != nil {
		updates["curso_activo"] = *req.Activo
	}
	if req.MaestroID != nil {
		if strings.TrimSpace(*req.MaestroID) == "" {
			updates["curso_maestro_id"] = nil
		} else {
			maestroID, err := ctrl.resolverMaestro(c, *req.MaestroID)
			if err != nil {
				return err
			}
			updates["curso_maestro_id"] = maestroID
		}
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Sin cambios", curso)
	}
	updates["curso_updated_at"] = gorm.Expr("now()")

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&curso).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al actualizar el curso")
	}
	return helper.JsonUpdated(c, "Curso actualizado exitosamente", curso)
}

// Delete da de baja el curso (borrado lógico); las inscripciones y entregas
// existentes se conservan para el historial de horas.
func (ctrl *CursoAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.CursoModel{}).
		Where("curso_id = ?", id).
		Updates(map[string]any{
			"curso_activo":     false,
			"curso_updated_at": gorm.Expr("now()"),
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al eliminar el curso")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Curso no encontrado")
	}
	return helper.JsonDeleted(c, "Curso eliminado exitosamente", fiber.Map{"curso_id": id})
}

// resolverMaestro verifica que el uuid corresponda a un maestro activo.
func (ctrl *CursoAdminController) resolverMaestro(c *fiber.Ctx, raw string) (*uuid.UUID, error) {
	maestroID, err := uuid.Parse(raw)
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "ID de maestro inválido")
	}
	var maestro usuarioModel.UsuarioModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Select("usuario_id").
		Where("usuario_id = ? AND usuario_tipo = ? AND usuario_activo = true",
			maestroID, usuarioModel.TipoMaestro).
		First(&maestro).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusBadRequest, "El maestro indicado no existe o no está activo")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
	}
	return &maestroID, nil
}
