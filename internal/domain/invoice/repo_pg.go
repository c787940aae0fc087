package invoice

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reportRepoPG struct{ pool *pgxpool.Pool }

// NewReportRepoPG creates the Postgres-backed report archive.
func NewReportRepoPG(pool *pgxpool.Pool) ReportRepository {
	return &reportRepoPG{pool: pool}
}

const reportCols = `id, num_factura, profile, finding_count, content, created_at`

func scanStoredReport(row pgx.Row) (*StoredReport, error) {
	var r StoredReport
	err := row.Scan(&r.ID, &r.NumFactura, &r.Profile, &r.FindingCount, &r.Content, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *reportRepoPG) Save(ctx context.Context, sr *StoredReport) error {
	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO validation_reports (id, num_factura, profile, finding_count, content)
		VALUES ($1, $2, $3, $4, $5)`,
		sr.ID, sr.NumFactura, sr.Profile, sr.FindingCount, sr.Content)
	return err
}

func (r *reportRepoPG) GetByNumFactura(ctx context.Context, numFactura string) (*StoredReport, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+reportCols+` FROM validation_reports
		WHERE num_factura = $1
		ORDER BY created_at DESC
		LIMIT 1`, numFactura)
	return scanStoredReport(row)
}

func (r *reportRepoPG) List(ctx context.Context, limit, offset int) ([]*StoredReport, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM validation_reports`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+reportCols+` FROM validation_reports
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reports []*StoredReport
	for rows.Next() {
		sr, err := scanStoredReport(rows)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, sr)
	}
	return reports, total, rows.Err()
}
