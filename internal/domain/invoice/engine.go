package invoice

import "fmt"

// RuleID identifies one rule evaluator in the registry.
type RuleID string

const (
	RuleDuplicates  RuleID = "duplicates"
	RuleDocumentAge RuleID = "document_age"
	RuleFinality    RuleID = "finality"
	RuleConsistency RuleID = "diagnosis_consistency"
)

// Profile names an enumerated subset of the rule registry.
type Profile string

const (
	// ProfileFull runs every rule: duplicates, document/age, finality
	// and diagnosis consistency.
	ProfileFull Profile = "full"
	// ProfileMorbidity runs duplicates and document/age only.
	ProfileMorbidity Profile = "morb"
)

var profileRules = map[Profile][]RuleID{
	ProfileFull:      {RuleDuplicates, RuleDocumentAge, RuleFinality, RuleConsistency},
	ProfileMorbidity: {RuleDuplicates, RuleDocumentAge},
}

// ParseProfile resolves a profile name, accepting "pyp" as an alias for
// the full profile.
func ParseProfile(name string) (Profile, error) {
	switch Profile(name) {
	case ProfileFull, Profile("pyp"):
		return ProfileFull, nil
	case ProfileMorbidity:
		return ProfileMorbidity, nil
	}
	return "", fmt.Errorf("unknown rule profile %q", name)
}

// Engine validates invoices with the rule subset of one profile. It holds
// no per-invoice state and is safe for concurrent use; all duplicate
// tracking lives in the validation call.
type Engine struct {
	profile Profile
	rules   map[RuleID]bool
}

// NewEngine builds an engine for the given profile. An unknown profile
// falls back to the full rule set.
func NewEngine(profile Profile) *Engine {
	ids, ok := profileRules[profile]
	if !ok {
		profile = ProfileFull
		ids = profileRules[ProfileFull]
	}
	rules := make(map[RuleID]bool, len(ids))
	for _, id := range ids {
		rules[id] = true
	}
	return &Engine{profile: profile, rules: rules}
}

// Profile returns the profile the engine was built with.
func (e *Engine) Profile() Profile { return e.profile }

func (e *Engine) enabled(id RuleID) bool { return e.rules[id] }

// Validate runs the enabled rules over every patient and service line of
// the invoice and returns the ordered findings report. It never fails:
// malformed content becomes findings, and one bad line never aborts the
// rest of the batch.
func (e *Engine) Validate(inv *Invoice) *Report {
	rep := NewReport(inv.NumFactura)

	if len(inv.Usuarios) == 0 {
		rep.Append(rawFinding(KindMissingPatientList, "⚠️ No se encontraron usuarios en la factura."))
		return rep
	}
	for _, u := range inv.Usuarios {
		e.validatePatient(u, rep)
	}
	return rep
}

func (e *Engine) validatePatient(p *Patient, rep *Report) {
	if p == nil {
		return
	}

	patientDoc := p.NumDocumentoIdentificacion
	if patientDoc == "" {
		patientDoc = fmt.Sprintf("ND-%d", p.Consecutivo)
	}

	if p.Servicios == nil {
		rep.Append(messageFinding(p.Consecutivo, KindMissingServicesSection,
			"No tiene sección 'servicios'."))
		return
	}

	tracker := newDuplicateTracker()

	for _, c := range p.Servicios.Consultas {
		if c == nil {
			rep.Append(newFinding(p.Consecutivo, KindLineReadError,
				"Error lectura consulta", "N/A", "N/A",
				"Registro de consulta nulo o ilegible."))
			continue
		}
		e.validateLine(p, patientDoc, tracker, consultationLine(c), rep)
	}

	for _, pr := range p.Servicios.Procedimientos {
		if pr == nil {
			rep.Append(newFinding(p.Consecutivo, KindLineReadError,
				"Error lectura procedimiento", "N/A", "N/A",
				"Registro de procedimiento nulo o ilegible."))
			continue
		}
		e.validateLine(p, patientDoc, tracker, procedureLine(pr), rep)
	}
}

func (e *Engine) validateLine(p *Patient, patientDoc string, tracker *duplicateTracker, line serviceLine, rep *Report) {
	if e.enabled(RuleDuplicates) {
		dup := tracker.Observe(line.kind, patientDoc, line.code, line.purpose,
			line.principalDx, dateKeyOf(line.fecha))
		if dup {
			rep.Append(duplicateFinding(p.Consecutivo, line))
		}
	}

	if e.enabled(RuleDocumentAge) {
		edad, ageFindings := ageYearsSafe(p, line.fecha)
		rep.Append(ageFindings...)
		rep.Append(checkDocumentType(p, line.fecha, edad)...)
	}

	if e.enabled(RuleFinality) {
		rep.Append(checkFinality(p.Consecutivo, line)...)
	}

	if e.enabled(RuleConsistency) && line.kind == kindConsulta {
		rep.Append(checkDiagnosisConsistency(p.Consecutivo, line)...)
	}
}

func duplicateFinding(consecutivo int, line serviceLine) Finding {
	if line.kind == kindConsulta {
		return newFinding(consecutivo, KindDuplicateServiceLine,
			"Consulta duplicada", line.fecha, line.code,
			"El paciente tiene otra consulta con el mismo código, finalidad y diagnóstico en la misma fecha.")
	}
	return newFinding(consecutivo, KindDuplicateServiceLine,
		"Procedimiento duplicado", line.fecha, line.code,
		fmt.Sprintf("El paciente tiene otro procedimiento con el mismo código, finalidad y diagnóstico en la misma fecha. (Consecutivo procedimiento: %d)",
			line.consecutivo))
}
