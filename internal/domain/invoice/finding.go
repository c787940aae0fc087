package invoice

import "fmt"

// Kind classifies a finding. Kinds are stable identifiers for callers
// that want to group or count findings; the rendered text is what end
// users see.
type Kind string

const (
	KindEmptyDate                 Kind = "EmptyDate"
	KindInvalidDateFormat         Kind = "InvalidDateFormat"
	KindInvalidBirthDate          Kind = "InvalidBirthDate"
	KindInvalidDocumentType       Kind = "InvalidDocumentType"
	KindAgeDocumentMismatch       Kind = "AgeDocumentMismatch"
	KindDuplicateServiceLine      Kind = "DuplicateServiceLine"
	KindFinalityMismatch          Kind = "FinalityMismatch"
	KindDiagnosisNotInReference   Kind = "DiagnosisNotInReferenceSet"
	KindMissingServicesSection    Kind = "MissingServicesSection"
	KindMissingPatientList        Kind = "MissingPatientList"
	KindLineReadError             Kind = "LineReadError"
	KindReportPersistenceFailure  Kind = "ReportPersistenceFailure"
)

// Finding is one reported validation issue. Findings are immutable once
// created, accumulate in arrival order, and are never deduplicated.
type Finding struct {
	Consecutivo int    `json:"consecutivo"`
	Kind        Kind   `json:"kind"`
	Category    string `json:"categoria,omitempty"`
	Fecha       string `json:"fecha,omitempty"`
	Codigo      string `json:"codigo,omitempty"`
	Detalle     string `json:"detalle,omitempty"`

	// raw overrides the standard rendering for invoice-level and
	// patient-level messages that predate the structured format.
	raw string
}

// newFinding builds a rule finding in the standard
// "Usuario consecutivo N -> categoria en fecha con código X. detalle"
// shape.
func newFinding(consecutivo int, kind Kind, category, fecha, codigo, detalle string) Finding {
	return Finding{
		Consecutivo: consecutivo,
		Kind:        kind,
		Category:    category,
		Fecha:       fecha,
		Codigo:      codigo,
		Detalle:     detalle,
	}
}

// messageFinding builds a patient-level finding rendered as
// "Usuario consecutivo N -> mensaje".
func messageFinding(consecutivo int, kind Kind, mensaje string) Finding {
	return Finding{
		Consecutivo: consecutivo,
		Kind:        kind,
		raw:         fmt.Sprintf("Usuario consecutivo %d -> %s", consecutivo, mensaje),
	}
}

// rawFinding builds an invoice-level finding with a verbatim line.
func rawFinding(kind Kind, line string) Finding {
	return Finding{Kind: kind, raw: line}
}

// Line renders the finding as one report line.
func (f Finding) Line() string {
	if f.raw != "" {
		return f.raw
	}
	fecha := f.Fecha
	if fecha == "" {
		fecha = "N/A"
	}
	return fmt.Sprintf("Usuario consecutivo %d -> %s en %s con código %s. %s",
		f.Consecutivo, f.Category, fecha, f.Codigo, f.Detalle)
}
