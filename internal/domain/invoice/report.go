package invoice

import (
	"fmt"
	"strings"
)

const reportSeparator = "=========================================================================="

// fallbackNumFactura labels invoices submitted without a number.
const fallbackNumFactura = "sin_numfact"

// Report is the ordered findings report for one invoice. It is produced
// fresh per validation call and has no identity beyond the caller's use.
type Report struct {
	NumFactura string
	Findings   []Finding
}

// NewReport creates an empty report for the given invoice number,
// substituting the fallback label when the number is blank.
func NewReport(numFactura string) *Report {
	if strings.TrimSpace(numFactura) == "" {
		numFactura = fallbackNumFactura
	}
	return &Report{NumFactura: numFactura}
}

// Append adds findings in arrival order.
func (r *Report) Append(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Passed reports whether the invoice produced no findings.
func (r *Report) Passed() bool {
	return len(r.Findings) == 0
}

// FileName returns the download/persistence file name for this report.
func (r *Report) FileName() string {
	return fmt.Sprintf("errores_validacion_fact_%s.txt", r.NumFactura)
}

// Render produces the plain-text report: a header line, a separator rule,
// then one line per finding in emission order. An absence of finding
// lines after the header means the invoice passed validation.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("Validación factura: ")
	b.WriteString(r.NumFactura)
	b.WriteByte('\n')
	b.WriteString(reportSeparator)
	b.WriteByte('\n')
	for _, f := range r.Findings {
		b.WriteString(f.Line())
		b.WriteByte('\n')
	}
	return b.String()
}
