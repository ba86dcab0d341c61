package helper

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestBuildPaginationFromPage(t *testing.T) {
	casos := []struct {
		nombre     string
		total      int64
		page       int
		perPage    int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"vacío", 0, 1, 20, 1, false, false},
		{"una página justa", 20, 1, 20, 1, false, false},
		{"sobra una fila", 21, 1, 20, 2, true, false},
		{"página intermedia", 100, 3, 20, 5, true, true},
		{"última página", 100, 5, 20, 5, false, true},
		{"valores inválidos normalizados", 10, 0, 0, 1, false, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			p := BuildPaginationFromPage(c.total, c.page, c.perPage)
			if p.TotalPages != c.totalPages {
				t.Errorf("TotalPages = %d, se esperaba %d", p.TotalPages, c.totalPages)
			}
			if p.HasNext != c.hasNext || p.HasPrev != c.hasPrev {
				t.Errorf("HasNext=%v HasPrev=%v", p.HasNext, p.HasPrev)
			}
		})
	}
}

func TestErrorHandlerEnvuelveEnJSON(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/privado", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "No autorizado")
	})
	app.Get("/roto", func(c *fiber.Ctx) error {
		return errors.New("falla interna con detalles")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/privado", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, se esperaba 401", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %q, se esperaba JSON", ct)
	}
	var cuerpo ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&cuerpo); err != nil {
		t.Fatalf("decodificar cuerpo: %v", err)
	}
	if cuerpo.Success || cuerpo.Message != "No autorizado" || cuerpo.ErrorCode != "UNAUTHORIZED" {
		t.Errorf("cuerpo = %+v", cuerpo)
	}

	// Los errores genéricos no filtran su mensaje.
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/roto", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, se esperaba 500", resp.StatusCode)
	}
	cuerpo = ErrorResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&cuerpo); err != nil {
		t.Fatalf("decodificar cuerpo: %v", err)
	}
	if strings.Contains(cuerpo.Message, "detalles") {
		t.Errorf("el mensaje interno no debe llegar al cliente: %q", cuerpo.Message)
	}
	if cuerpo.ErrorCode != "INTERNAL_ERROR" {
		t.Errorf("error_code = %q", cuerpo.ErrorCode)
	}
}
