package invoice

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, repo ReportRepository) *echo.Echo {
	t.Helper()
	e := echo.New()
	svc := NewService(repo, "", zerolog.Nop())
	NewHandler(svc).RegisterRoutes(e.Group("/api"))
	return e
}

const cleanInvoiceJSON = `{
	"numFactura": "FE-123",
	"usuarios": [{
		"tipoDocumentoIdentificacion": "CC",
		"numDocumentoIdentificacion": "1020304050",
		"fechaNacimiento": "1990-05-10",
		"consecutivo": 1,
		"servicios": {
			"consultas": [{
				"fechaInicioAtencion": "2024-03-15 10:30",
				"codConsulta": "890201",
				"finalidadTecnologiaSalud": "10",
				"codDiagnosticoPrincipal": "Z001",
				"vrServicio": 35000,
				"valorPagoModerador": 0,
				"consecutivo": 1
			}]
		}
	}]
}`

func TestHandler_ValidateFull(t *testing.T) {
	e := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/factura/validar",
		strings.NewReader(cleanInvoiceJSON))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain, got %s", ct)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, `attachment; filename="errores_validacion_fact_FE-123.txt"`) {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "Validación factura: FE-123\n") {
		t.Errorf("unexpected body: %q", body)
	}
	// Clean invoice: header and separator, no finding lines.
	if n := len(strings.Split(strings.TrimRight(body, "\n"), "\n")); n != 2 {
		t.Errorf("expected 2 lines for a clean invoice, got %d", n)
	}
}

func TestHandler_ValidatePyPAlias(t *testing.T) {
	e := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/factura/validar_pyp",
		strings.NewReader(cleanInvoiceJSON))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ValidateMorbidity(t *testing.T) {
	// Z300 with finality 11 fails the full profile but passes morbidity.
	invJSON := strings.Replace(cleanInvoiceJSON, `"Z001"`, `"Z300"`, 1)
	invJSON = strings.Replace(invJSON, `"finalidadTecnologiaSalud": "10"`,
		`"finalidadTecnologiaSalud": "11"`, 1)

	e := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/factura/validar_morb",
		strings.NewReader(invJSON))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if n := len(strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")); n != 2 {
		t.Errorf("expected morbidity profile to pass, got body: %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/factura/validar",
		strings.NewReader(invJSON))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "Finalidad inválida en Consulta") {
		t.Errorf("expected full profile to flag finality, got: %s", rec.Body.String())
	}
}

func TestHandler_ValidateBadJSON(t *testing.T) {
	e := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/factura/validar",
		strings.NewReader("{no es json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_ValidateMissingNumFactura(t *testing.T) {
	e := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/factura/validar",
		strings.NewReader(`{"usuarios": []}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "errores_validacion_fact_sin_numfact.txt") {
		t.Errorf("expected fallback file name, got: %s", cd)
	}
	if !strings.Contains(rec.Body.String(), "No se encontraron usuarios en la factura") {
		t.Errorf("expected empty patient list finding, got: %s", rec.Body.String())
	}
}

func TestHandler_GetReport(t *testing.T) {
	e := newTestServer(t, nil)

	// Not validated yet.
	req := httptest.NewRequest(http.MethodGet, "/api/factura/errores/FE-123", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 before validation, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/factura/validar",
		strings.NewReader(cleanInvoiceJSON))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("validation failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/factura/errores/FE-123", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after validation, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "Validación factura: FE-123\n") {
		t.Errorf("unexpected report body: %q", rec.Body.String())
	}
}

func TestHandler_ListReports(t *testing.T) {
	repo := &mockReportRepo{listed: []*StoredReport{
		{NumFactura: "FE-1", Profile: "full", FindingCount: 2},
		{NumFactura: "FE-2", Profile: "morb", FindingCount: 0},
	}}
	e := newTestServer(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/factura/reportes?limit=10", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []*StoredReport `json:"data"`
		Total int             `json:"total"`
		Limit int             `json:"limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Errorf("expected 2 reports, got %d/%d", len(resp.Data), resp.Total)
	}
	if resp.Limit != 10 {
		t.Errorf("expected limit 10, got %d", resp.Limit)
	}
	if resp.Data[0].NumFactura != "FE-1" {
		t.Errorf("unexpected first report: %+v", resp.Data[0])
	}
}
