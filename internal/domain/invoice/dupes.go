package invoice

import "strings"

// duplicateTracker remembers the composite service-line keys already seen
// for one patient. Its state is scoped to a single patient inside a
// single validation call and discarded afterwards.
type duplicateTracker struct {
	seen map[string]bool
}

func newDuplicateTracker() *duplicateTracker {
	return &duplicateTracker{seen: make(map[string]bool)}
}

// Observe registers the composite key for a service line and reports
// whether it was already present. Keys are kind-scoped, so a consultation
// and a procedure with otherwise identical fields never collide.
func (t *duplicateTracker) Observe(kind lineKind, patientDoc, code, purpose, principalDx, dateKey string) bool {
	key := string(kind) + "|" + strings.Join([]string{patientDoc, code, purpose, principalDx, dateKey}, "_")
	if t.seen[key] {
		return true
	}
	t.seen[key] = true
	return false
}
