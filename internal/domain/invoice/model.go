package invoice

import "github.com/shopspring/decimal"

// Invoice is one RIPS billing submission (factura) as received from the
// integrator. Field names follow the RIPS JSON layout. The structure is
// immutable once received; validation never mutates it.
type Invoice struct {
	NumDocumentoIdObligado string     `json:"numDocumentoIdObligado"`
	NumFactura             string     `json:"numFactura"`
	TipoNota               string     `json:"tipoNota,omitempty"`
	NumNota                string     `json:"numNota,omitempty"`
	Usuarios               []*Patient `json:"usuarios"`
}

// Patient is one covered individual (usuario) within an invoice.
// Consecutivo is the patient's sequential index, unique within the invoice.
type Patient struct {
	TipoDocumentoIdentificacion  string    `json:"tipoDocumentoIdentificacion"`
	NumDocumentoIdentificacion   string    `json:"numDocumentoIdentificacion"`
	TipoUsuario                  string    `json:"tipoUsuario"`
	FechaNacimiento              string    `json:"fechaNacimiento"`
	CodSexo                      string    `json:"codSexo"`
	CodPaisResidencia            string    `json:"codPaisResidencia"`
	CodMunicipioResidencia       string    `json:"codMunicipioResidencia"`
	CodZonaTerritorialResidencia string    `json:"codZonaTerritorialResidencia"`
	Incapacidad                  string    `json:"incapacidad"`
	Consecutivo                  int       `json:"consecutivo"`
	CodPaisOrigen                string    `json:"codPaisOrigen"`
	Servicios                    *Services `json:"servicios,omitempty"`
}

// Services groups a patient's service lines. Either slice may be empty or
// absent; a null element inside a slice is reported as a line read error
// rather than aborting the batch.
type Services struct {
	Consultas      []*Consultation `json:"consultas,omitempty"`
	Procedimientos []*Procedure    `json:"procedimientos,omitempty"`
}

// Consultation is one billed consultation line. The two related diagnosis
// codes participate in the diagnosis-consistency rule.
type Consultation struct {
	CodPrestador                 string          `json:"codPrestador"`
	FechaInicioAtencion          string          `json:"fechaInicioAtencion"`
	NumAutorizacion              string          `json:"numAutorizacion"`
	CodConsulta                  string          `json:"codConsulta"`
	ModalidadGrupoServicioTecSal string          `json:"modalidadGrupoServicioTecSal"`
	GrupoServicios               string          `json:"grupoServicios"`
	CodServicio                  int             `json:"codServicio"`
	FinalidadTecnologiaSalud     string          `json:"finalidadTecnologiaSalud"`
	CausaMotivoAtencion          string          `json:"causaMotivoAtencion"`
	CodDiagnosticoPrincipal      string          `json:"codDiagnosticoPrincipal"`
	TipoDiagnosticoPrincipal     string          `json:"tipoDiagnosticoPrincipal"`
	CodDiagnosticoRelacionado1   string          `json:"codDiagnosticoRelacionado1,omitempty"`
	CodDiagnosticoRelacionado2   string          `json:"codDiagnosticoRelacionado2,omitempty"`
	TipoDocumentoIdentificacion  string          `json:"tipoDocumentoIdentificacion"`
	NumDocumentoIdentificacion   string          `json:"numDocumentoIdentificacion"`
	VrServicio                   decimal.Decimal `json:"vrServicio"`
	ConceptoRecaudo              string          `json:"conceptoRecaudo"`
	ValorPagoModerador           decimal.Decimal `json:"valorPagoModerador"`
	Consecutivo                  int             `json:"consecutivo"`
}

// Procedure is one billed procedure line. It carries no related diagnosis
// codes, so the diagnosis-consistency rule does not apply to it.
type Procedure struct {
	CodPrestador                 string          `json:"codPrestador"`
	FechaInicioAtencion          string          `json:"fechaInicioAtencion"`
	NumAutorizacion              string          `json:"numAutorizacion"`
	CodProcedimiento             string          `json:"codProcedimiento"`
	ViaIngresoServicioSalud      string          `json:"viaIngresoServicioSalud"`
	ModalidadGrupoServicioTecSal string          `json:"modalidadGrupoServicioTecSal"`
	GrupoServicios               string          `json:"grupoServicios"`
	CodServicio                  int             `json:"codServicio"`
	FinalidadTecnologiaSalud     string          `json:"finalidadTecnologiaSalud"`
	TipoDocumentoIdentificacion  string          `json:"tipoDocumentoIdentificacion"`
	NumDocumentoIdentificacion   string          `json:"numDocumentoIdentificacion"`
	CodDiagnosticoPrincipal      string          `json:"codDiagnosticoPrincipal"`
	VrServicio                   decimal.Decimal `json:"vrServicio"`
	ConceptoRecaudo              string          `json:"conceptoRecaudo"`
	ValorPagoModerador           decimal.Decimal `json:"valorPagoModerador"`
	Consecutivo                  int             `json:"consecutivo"`
}

// lineKind distinguishes consultation keys from procedure keys so that
// duplicate detection never collides across line types.
type lineKind string

const (
	kindConsulta      lineKind = "consulta"
	kindProcedimiento lineKind = "procedimiento"
)

// label returns the human-readable line type used in finding texts.
func (k lineKind) label() string {
	if k == kindConsulta {
		return "Consulta"
	}
	return "Procedimiento"
}

// serviceLine is the rule-facing view of one consultation or procedure.
// Rules operate on this shape so they stay independent of the two
// structurally near-identical DTOs.
type serviceLine struct {
	kind        lineKind
	fecha       string // raw fechaInicioAtencion
	code        string // codConsulta or codProcedimiento
	purpose     string // finalidadTecnologiaSalud
	principalDx string
	relatedDx1  string
	relatedDx2  string
	hasRelated  bool // only consultation lines carry related diagnoses
	consecutivo int
}

func consultationLine(c *Consultation) serviceLine {
	return serviceLine{
		kind:        kindConsulta,
		fecha:       c.FechaInicioAtencion,
		code:        c.CodConsulta,
		purpose:     c.FinalidadTecnologiaSalud,
		principalDx: c.CodDiagnosticoPrincipal,
		relatedDx1:  c.CodDiagnosticoRelacionado1,
		relatedDx2:  c.CodDiagnosticoRelacionado2,
		hasRelated:  true,
		consecutivo: c.Consecutivo,
	}
}

func procedureLine(p *Procedure) serviceLine {
	return serviceLine{
		kind:        kindProcedimiento,
		fecha:       p.FechaInicioAtencion,
		code:        p.CodProcedimiento,
		purpose:     p.FinalidadTecnologiaSalud,
		principalDx: p.CodDiagnosticoPrincipal,
		consecutivo: p.Consecutivo,
	}
}
