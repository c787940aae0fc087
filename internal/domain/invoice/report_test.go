package invoice

import (
	"strings"
	"testing"
)

func TestNewReport_FallbackNumFactura(t *testing.T) {
	if rep := NewReport(""); rep.NumFactura != "sin_numfact" {
		t.Errorf("expected sin_numfact, got %s", rep.NumFactura)
	}
	if rep := NewReport("   "); rep.NumFactura != "sin_numfact" {
		t.Errorf("expected sin_numfact for blank input, got %s", rep.NumFactura)
	}
	if rep := NewReport("FE-123"); rep.NumFactura != "FE-123" {
		t.Errorf("expected FE-123, got %s", rep.NumFactura)
	}
}

func TestReport_FileName(t *testing.T) {
	rep := NewReport("FE-123")
	if got := rep.FileName(); got != "errores_validacion_fact_FE-123.txt" {
		t.Errorf("unexpected file name: %s", got)
	}
}

func TestReport_Render(t *testing.T) {
	rep := NewReport("FE-123")
	rep.Append(messageFinding(1, KindMissingServicesSection, "No tiene sección 'servicios'."))
	rep.Append(newFinding(2, KindFinalityMismatch, "Finalidad inválida en Consulta",
		"2024-03-15", "Z300", "detalle."))

	lines := strings.Split(strings.TrimRight(rep.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Validación factura: FE-123" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != strings.Repeat("=", 74) {
		t.Errorf("unexpected separator: %q", lines[1])
	}
	if lines[2] != "Usuario consecutivo 1 -> No tiene sección 'servicios'." {
		t.Errorf("unexpected message line: %s", lines[2])
	}
	if lines[3] != "Usuario consecutivo 2 -> Finalidad inválida en Consulta en 2024-03-15 con código Z300. detalle." {
		t.Errorf("unexpected finding line: %s", lines[3])
	}
}

func TestReport_RenderPassed(t *testing.T) {
	rep := NewReport("FE-123")
	if !rep.Passed() {
		t.Error("expected empty report to pass")
	}

	lines := strings.Split(strings.TrimRight(rep.Render(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and separator only, got %d lines", len(lines))
	}
}

func TestFinding_LineFechaFallback(t *testing.T) {
	f := newFinding(3, KindLineReadError, "Error lectura consulta", "", "N/A",
		"Registro de consulta nulo o ilegible.")
	if !strings.Contains(f.Line(), "en N/A con código") {
		t.Errorf("expected N/A date fallback, got: %s", f.Line())
	}
}
