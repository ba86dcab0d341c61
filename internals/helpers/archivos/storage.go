// Almacenamiento de archivos en disco local. Las rutas devueltas son
// relativas y estables: /uploads/{tipo}/{referencia}/{nombre-unico}.
package archivos

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Tipo string

const (
	TipoEntregas Tipo = "entregas"
	TipoAvances  Tipo = "avances"
	TipoTareas   Tipo = "tareas"
	TipoCursos   Tipo = "cursos"
)

func (t Tipo) Valido() bool {
	switch t {
	case TipoEntregas, TipoAvances, TipoTareas, TipoCursos:
		return true
	}
	return false
}

type Storage struct {
	basePath    string
	maxFileSize int64
}

func NewStorage(basePath string, maxFileSize int64) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("no se pudo crear el directorio de uploads: %w", err)
	}
	return &Storage{basePath: basePath, maxFileSize: maxFileSize}, nil
}

// Guardar escribe el contenido y devuelve la ruta pública relativa.
func (s *Storage) Guardar(src io.Reader, nombreOriginal string, tipo Tipo, referencia string) (string, error) {
	if !tipo.Valido() {
		return "", fmt.Errorf("tipo de archivo inválido: %s", tipo)
	}
	if referencia == "" {
		referencia = "0"
	}

	// Nombre único; se conserva la extensión original.
	nombre := uuid.New().String() + strings.ToLower(filepath.Ext(nombreOriginal))
	dir := filepath.Join(s.basePath, string(tipo), referencia)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("no se pudo crear el directorio destino: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, nombre))
	if err != nil {
		return "", fmt.Errorf("no se pudo crear el archivo destino: %w", err)
	}
	defer dst.Close()

	limit := io.Reader(src)
	if s.maxFileSize > 0 {
		limit = io.LimitReader(src, s.maxFileSize+1)
	}
	n, err := io.Copy(dst, limit)
	if err != nil {
		return "", fmt.Errorf("no se pudo copiar el contenido: %w", err)
	}
	if s.maxFileSize > 0 && n > s.maxFileSize {
		_ = os.Remove(filepath.Join(dir, nombre))
		return "", fmt.Errorf("el archivo excede el tamaño máximo permitido")
	}

	return "/" + filepath.ToSlash(filepath.Join("uploads", string(tipo), referencia, nombre)), nil
}

// GuardarMultipart valida el tamaño declarado antes de copiar.
func (s *Storage) GuardarMultipart(fh *multipart.FileHeader, tipo Tipo, referencia string) (string, error) {
	if s.maxFileSize > 0 && fh.Size > s.maxFileSize {
		return "", fmt.Errorf("el archivo excede el tamaño máximo permitido")
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("no se pudo abrir el archivo subido: %w", err)
	}
	defer src.Close()
	return s.Guardar(src, fh.Filename, tipo, referencia)
}

// Eliminar borra un archivo por su ruta pública. Best-effort para la
// compensación cuando falla el insert en la base.
func (s *Storage) Eliminar(rutaPublica string) error {
	rel := strings.TrimPrefix(rutaPublica, "/uploads/")
	if rel == rutaPublica || strings.Contains(rel, "..") {
		return fmt.Errorf("ruta inválida: %s", rutaPublica)
	}
	return os.Remove(filepath.Join(s.basePath, filepath.FromSlash(rel)))
}
