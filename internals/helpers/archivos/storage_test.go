package archivos

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGuardarYEliminar(t *testing.T) {
	base := t.TempDir()
	s, err := NewStorage(base, 1<<20)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}

	ruta, err := s.Guardar(strings.NewReader("contenido"), "reporte.PDF", TipoEntregas, "abc")
	if err != nil {
		t.Fatalf("Guardar: %v", err)
	}
	if !strings.HasPrefix(ruta, "/uploads/entregas/abc/") {
		t.Errorf("ruta = %s", ruta)
	}
	if !strings.HasSuffix(ruta, ".pdf") {
		t.Errorf("la extensión debe conservarse en minúsculas: %s", ruta)
	}

	rel := strings.TrimPrefix(ruta, "/uploads/")
	datos, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("leer archivo guardado: %v", err)
	}
	if string(datos) != "contenido" {
		t.Errorf("contenido = %q", datos)
	}

	if err := s.Eliminar(ruta); err != nil {
		t.Fatalf("Eliminar: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, filepath.FromSlash(rel))); !os.IsNotExist(err) {
		t.Error("el archivo debió eliminarse")
	}
}

func TestGuardarNombresUnicos(t *testing.T) {
	s, err := NewStorage(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := s.Guardar(strings.NewReader("a"), "x.txt", TipoAvances, "1")
	if err != nil {
		t.Fatal(err)
	}
	r2, err := s.Guardar(strings.NewReader("b"), "x.txt", TipoAvances, "1")
	if err != nil {
		t.Fatal(err)
	}
	if r1 == r2 {
		t.Error("dos subidas del mismo nombre deben producir rutas distintas")
	}
}

func TestGuardarExcedeTamano(t *testing.T) {
	s, err := NewStorage(t.TempDir(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Guardar(strings.NewReader("demasiado grande"), "x.bin", TipoTareas, "1"); err == nil {
		t.Error("debe rechazarse el archivo que excede el límite")
	}
}

func TestGuardarTipoInvalido(t *testing.T) {
	s, err := NewStorage(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Guardar(strings.NewReader("x"), "x.txt", Tipo("otro"), "1"); err == nil {
		t.Error("un tipo desconocido debe rechazarse")
	}
}

func TestEliminarRutaInvalida(t *testing.T) {
	s, err := NewStorage(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, ruta := range []string{"/etc/passwd", "/uploads/../../etc/passwd"} {
		if err := s.Eliminar(ruta); err == nil {
			t.Errorf("Eliminar(%q) debió fallar", ruta)
		}
	}
}
