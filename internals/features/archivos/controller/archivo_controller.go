package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestorhoras_backend/internals/features/archivos/model"
	entregaModel "gestorhoras_backend/internals/features/entregas/model"
	helper "gestorhoras_backend/internals/helpers"
	"gestorhoras_backend/internals/helpers/archivos"
)

// ArchivoController recibe archivos multipart y los liga a una entrega.
type ArchivoController struct {
	DB      *gorm.DB
	Storage *archivos.Storage
}

func NewArchivoController(db *gorm.DB, storage *archivos.Storage) *ArchivoController {
	return &ArchivoController{DB: db, Storage: storage}
}

// Subir guarda el archivo bajo /uploads/{tipo}/{referencia}/ y, cuando el
// tipo es entregas, registra la fila en archivos. El archivo en disco se
// escribe primero; si el insert falla se elimina como compensación.
func (ctrl *ArchivoController) Subir(c *fiber.Ctx) error {
	usuarioID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}

	tipo := archivos.Tipo(strings.TrimSpace(c.FormValue("tipo")))
	if !tipo.Valido() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tipo de archivo inválido")
	}
	referencia := strings.TrimSpace(c.FormValue("referencia"))
	if referencia == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "La referencia es requerida")
	}

	fh, err := c.FormFile("archivo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "El archivo es requerido")
	}

	var entrega *entregaModel.EntregaModel
	if tipo == archivos.TipoEntregas {
		entregaID, err := uuid.Parse(referencia)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID de entrega inválido")
		}
		var e entregaModel.EntregaModel
		err = ctrl.DB.WithContext(c.UserContext()).
			Where("entrega_id = ? AND entrega_alumno_id = ?", entregaID, usuarioID).
			First(&e).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Entrega no encontrada o no autorizada")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error interno")
		}
		entrega = &e
	}

	ruta, err := ctrl.Storage.GuardarMultipart(fh, tipo, referencia)
	if err != nil {
		log.Printf("[ERROR] guardar archivo: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if entrega == nil {
		return helper.JsonCreated(c, "Archivo subido exitosamente", fiber.Map{
			"ruta":   ruta,
			"nombre": fh.Filename,
		})
	}

	registro := model.ArchivoModel{
		ArchivoEntregaID:   entrega.EntregaID,
		ArchivoNombre:      fh.Filename,
		ArchivoRuta:        ruta,
		ArchivoTipoMime:    fh.Header.Get("Content-Type"),
		ArchivoTamanoBytes: fh.Size,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&registro).Error; err != nil {
		if rmErr := ctrl.Storage.Eliminar(ruta); rmErr != nil {
			log.Printf("[WARN] no se pudo eliminar %s tras fallo de insert: %v", ruta, rmErr)
		}
		log.Printf("[ERROR] registrar archivo: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al registrar el archivo")
	}
	return helper.JsonCreated(c, "Archivo subido exitosamente", registro)
}

// DeEntrega lista los archivos ligados a una entrega del propio alumno.
func (ctrl *ArchivoController) DeEntrega(c *fiber.Ctx) error {
	usuarioID, err := helper.UsuarioIDFromLocals(c)
	if err != nil {
		return err
	}
	entregaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}

	q := ctrl.DB.WithContext(c.UserContext()).
		Table("archivos").
		Joins("JOIN entregas ON entregas.entrega_id = archivos.archivo_entrega_id").
		Where("archivos.archivo_entrega_id = ?", entregaID)

	// El alumno solo ve sus archivos; el maestro los de sus cursos.
	switch helper.TipoUsuarioFromLocals(c) {
	case "maestro":
		q = q.Joins("JOIN tareas ON tareas.tarea_id = entregas.entrega_tarea_id").
			Joins("JOIN cursos ON cursos.curso_id = tareas.tarea_curso_id").
			Where("cursos.curso_maestro_id = ?", usuarioID)
	case "administrador":
		// Sin filtro adicional.
	default:
		q = q.Where("entregas.entrega_alumno_id = ?", usuarioID)
	}

	var archivosDeEntrega []model.ArchivoModel
	if err := q.Select("archivos.*").
		Order("archivos.archivo_created_at ASC").
		Scan(&archivosDeEntrega).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error al consultar archivos")
	}
	return helper.JsonOK(c, "OK", archivosDeEntrega)
}
