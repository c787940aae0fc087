package invoice

import (
	"errors"
	"fmt"
	"strings"
)

// ageYearsSafe computes the whole-years age at the attention date.
// When either date fails to parse it records one finding and returns the
// -1 sentinel so callers keep processing instead of aborting the invoice.
func ageYearsSafe(p *Patient, fechaAtencion string) (int, []Finding) {
	nacimiento, err := ParseBirthDate(p.FechaNacimiento)
	if err != nil {
		return -1, []Finding{messageFinding(p.Consecutivo, KindInvalidBirthDate,
			"Error parseando fechaNacimiento/fechaAtencion: "+err.Error())}
	}
	atencion, err := ResolveAttentionDate(fechaAtencion)
	if err != nil {
		return -1, []Finding{messageFinding(p.Consecutivo, attentionDateKind(err),
			"Error parseando fechaNacimiento/fechaAtencion: "+err.Error())}
	}
	years, _ := AgeAt(nacimiento, atencion)
	return years, nil
}

func attentionDateKind(err error) Kind {
	if errors.Is(err, ErrEmptyDate) {
		return KindEmptyDate
	}
	return KindInvalidDateFormat
}

// checkDocumentType validates the patient's identity-document type
// against the allowed set and the age windows derived from the attention
// date. A type outside the allowed set stops the rule before any age
// check; a date-parse failure aborts only this rule for the current line.
func checkDocumentType(p *Patient, fechaAtencion string, edadAnios int) []Finding {
	tipoDoc := strings.TrimSpace(p.TipoDocumentoIdentificacion)

	if !allowedDocumentTypes[tipoDoc] {
		return []Finding{messageFinding(p.Consecutivo, KindInvalidDocumentType,
			fmt.Sprintf("Tipo de documento inválido: %s. Debe ser uno de [%s]",
				tipoDoc, strings.Join(allowedDocumentTypeList, ", ")))}
	}

	nacimiento, err := ParseBirthDate(p.FechaNacimiento)
	if err != nil {
		return []Finding{messageFinding(p.Consecutivo, KindInvalidBirthDate,
			"Error parseando fechas: "+err.Error())}
	}
	atencion, err := ResolveAttentionDate(fechaAtencion)
	if err != nil {
		return []Finding{messageFinding(p.Consecutivo, attentionDateKind(err),
			"Error parseando fechas: "+err.Error())}
	}
	_, diasVida := AgeAt(nacimiento, atencion)

	valido := true
	sugerencia := ""

	switch tipoDoc {
	case "MS":
		if diasVida > 30 {
			valido = false
			sugerencia = "MS solo es válido hasta 30 días de nacido."
		}
	case "RC":
		if edadAnios >= 7 {
			valido = false
			sugerencia = "RC aplica para menores de 7 años; si tiene >=7 años use TI o CC según corresponda."
		}
	case "TI":
		if edadAnios < 7 || edadAnios > 17 {
			valido = false
			sugerencia = "TI aplica entre 7 y 17 años cumplidos."
		}
	case "AS":
		if edadAnios <= 17 {
			valido = false
			sugerencia = "AS aplica solo para mayores de 17 años (adulto sin identificación)."
		}
	case "CC":
		if edadAnios < 18 {
			valido = false
			sugerencia = "CC aplica preferiblemente para mayores de 17 años; revise el tipo de documento."
		}
	default:
		// CE, PA: no age constraint.
	}

	// Overriding rule, evaluated last: an adult can never carry a
	// minor's document regardless of the per-type outcome above.
	if edadAnios >= 18 && (tipoDoc == "RC" || tipoDoc == "TI" || tipoDoc == "MS") {
		valido = false
		sugerencia = "Para mayores de 17 años no se debe usar RC/TI/MS; use CC, CE o PA según corresponda."
	}

	if !valido {
		return []Finding{messageFinding(p.Consecutivo, KindAgeDocumentMismatch,
			fmt.Sprintf("Tipo de documento no coincide con la edad (%d años, %d días). %s",
				edadAnios, diasVida, sugerencia))}
	}
	return nil
}

// checkFinality enforces the mandated purpose-of-service code for the
// family-planning and prenatal diagnosis families. The two sets are
// checked independently; a match in one never short-circuits the other.
func checkFinality(consecutivo int, line serviceLine) []Finding {
	dx := normalizeCode(line.principalDx)
	purpose := strings.TrimSpace(line.purpose)

	var findings []Finding
	if familyPlanningDx[dx] && purpose != finalidadFamilyPlanning {
		findings = append(findings, newFinding(consecutivo, KindFinalityMismatch,
			"Finalidad inválida en "+line.kind.label(), line.fecha, line.principalDx,
			fmt.Sprintf("El diagnóstico %s es de planificación familiar; se espera finalidad '%s' y se recibió '%s'.",
				line.principalDx, finalidadFamilyPlanning, purpose)))
	}
	if prenatalDx[dx] && purpose != finalidadPrenatal {
		findings = append(findings, newFinding(consecutivo, KindFinalityMismatch,
			"Finalidad inválida en "+line.kind.label(), line.fecha, line.principalDx,
			fmt.Sprintf("El diagnóstico %s es de control prenatal; se espera finalidad '%s' y se recibió '%s'.",
				line.principalDx, finalidadPrenatal, purpose)))
	}
	return findings
}

// checkDiagnosisConsistency validates the principal diagnosis against the
// health-promotion guideline set, falling back to the two related
// diagnoses as promotion candidates. Branches are mutually exclusive and
// evaluated in order; only the first match fires. Line shapes without
// related diagnosis fields skip the rule entirely.
func checkDiagnosisConsistency(consecutivo int, line serviceLine) []Finding {
	if !line.hasRelated {
		return nil
	}
	if pypGuidelineDx[normalizeCode(line.principalDx)] {
		return nil
	}
	if pypGuidelineDx[normalizeCode(line.relatedDx1)] {
		return []Finding{newFinding(consecutivo, KindDiagnosisNotInReference,
			"Diagnóstico fuera de norma técnica", line.fecha, line.principalDx,
			fmt.Sprintf("El diagnóstico relacionado 1 (%s) sí pertenece a la norma técnica; promuévalo a diagnóstico principal.",
				line.relatedDx1))}
	}
	if pypGuidelineDx[normalizeCode(line.relatedDx2)] {
		return []Finding{newFinding(consecutivo, KindDiagnosisNotInReference,
			"Diagnóstico fuera de norma técnica", line.fecha, line.principalDx,
			fmt.Sprintf("El diagnóstico relacionado 2 (%s) sí pertenece a la norma técnica; promuévalo a diagnóstico principal.",
				line.relatedDx2))}
	}
	return []Finding{newFinding(consecutivo, KindDiagnosisNotInReference,
		"Diagnóstico fuera de norma técnica", line.fecha, line.principalDx,
		"Ni el diagnóstico principal ni los relacionados pertenecen a la norma técnica.")}
}
