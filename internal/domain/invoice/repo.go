package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StoredReport maps to the validation_reports archive table.
type StoredReport struct {
	ID           uuid.UUID `db:"id" json:"id"`
	NumFactura   string    `db:"num_factura" json:"num_factura"`
	Profile      string    `db:"profile" json:"profile"`
	FindingCount int       `db:"finding_count" json:"finding_count"`
	Content      string    `db:"content" json:"content"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ReportRepository archives rendered reports for later retrieval. The
// archive is an external collaborator of the validation core: saving may
// fail without failing the validation request.
type ReportRepository interface {
	Save(ctx context.Context, r *StoredReport) error
	GetByNumFactura(ctx context.Context, numFactura string) (*StoredReport, error)
	List(ctx context.Context, limit, offset int) ([]*StoredReport, int, error)
}
