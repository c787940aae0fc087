package invoice

import "strings"

// Fixed reference configuration for the rule engine. The sets are small
// and static for the process lifetime, so they live here as literals and
// are compared by exact membership after normalization.

// allowedDocumentTypeList keeps a stable order for finding texts;
// allowedDocumentTypes is the membership index.
var allowedDocumentTypeList = []string{"CC", "CE", "PA", "RC", "TI", "AS", "MS"}

var allowedDocumentTypes = func() map[string]bool {
	m := make(map[string]bool, len(allowedDocumentTypeList))
	for _, t := range allowedDocumentTypeList {
		m[t] = true
	}
	return m
}()

// Purpose-of-service (finalidad) codes mandated for the diagnosis
// families below.
const (
	finalidadFamilyPlanning = "19"
	finalidadPrenatal       = "23"
)

// familyPlanningDx holds the diagnosis codes that must be billed with
// finalidad 19 (family planning and procreative management).
var familyPlanningDx = codeSet(
	"Z300", "Z301", "Z302", "Z303", "Z304", "Z305", "Z308", "Z309",
	"Z310", "Z311", "Z312", "Z313", "Z314", "Z315", "Z316", "Z318", "Z319",
)

// prenatalDx holds the diagnosis codes that must be billed with
// finalidad 23 (early detection of pregnancy alterations).
var prenatalDx = codeSet(
	"Z320", "Z321", "Z330", "Z340", "Z348", "Z349",
	"Z350", "Z351", "Z352", "Z353", "Z354", "Z355", "Z356", "Z357", "Z358", "Z359",
	"Z360", "Z361", "Z362", "Z363", "Z364", "Z365", "Z368", "Z369",
)

// pypGuidelineDx holds the principal diagnosis codes accepted by the
// health-promotion technical guideline. A consultation whose principal
// diagnosis is outside this set is flagged, with the related diagnoses
// considered as fallback candidates.
var pypGuidelineDx = codeSet(
	"Z000", "Z001", "Z002", "Z003", "Z004", "Z008", "Z009",
	"Z010", "Z012", "Z013", "Z014", "Z017", "Z018",
	"Z100", "Z108", "Z113", "Z119", "Z124", "Z125", "Z139",
	"Z271", "Z300", "Z304", "Z340", "Z348", "Z349", "Z359",
	"Z390", "Z391", "Z392", "Z713", "Z762", "Z768",
)

func codeSet(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[normalizeCode(c)] = true
	}
	return m
}

// normalizeCode upper-cases and trims a diagnosis code so membership
// checks are case-insensitive and whitespace-tolerant.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
