package invoice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// ErrReportNotFound is returned when neither the cache nor the archive
// holds a report for the requested invoice number.
var ErrReportNotFound = errors.New("report not found")

// Service wraps the pure rule engine with the external collaborators:
// a concurrency-safe report cache keyed by invoice number, a report file
// on disk, and an optional Postgres archive. Persistence failures never
// fail a validation request; they degrade into one extra report line.
type Service struct {
	repo      ReportRepository // nil disables the archive
	reportDir string           // empty disables the disk copy
	logger    zerolog.Logger

	mu    sync.RWMutex
	cache map[string]string // rendered report text by numFactura
}

func NewService(repo ReportRepository, reportDir string, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		reportDir: reportDir,
		logger:    logger,
		cache:     make(map[string]string),
	}
}

// Validate runs the engine for the given profile, then caches, writes and
// archives the rendered report. The returned report already includes any
// persistence-failure lines.
func (s *Service) Validate(ctx context.Context, inv *Invoice, profile Profile) *Report {
	eng := NewEngine(profile)
	rep := eng.Validate(inv)

	if s.reportDir != "" {
		path := filepath.Join(s.reportDir, rep.FileName())
		if err := os.WriteFile(path, []byte(rep.Render()), 0o644); err != nil {
			rep.Append(rawFinding(KindReportPersistenceFailure,
				"⚠️ No se pudo escribir archivo en disco: "+err.Error()))
		}
	}

	if s.repo != nil {
		stored := &StoredReport{
			NumFactura:   rep.NumFactura,
			Profile:      string(eng.Profile()),
			FindingCount: len(rep.Findings),
			Content:      rep.Render(),
		}
		if err := s.repo.Save(ctx, stored); err != nil {
			rep.Append(rawFinding(KindReportPersistenceFailure,
				"⚠️ No se pudo archivar el reporte: "+err.Error()))
		}
	}

	text := rep.Render()
	s.mu.Lock()
	s.cache[rep.NumFactura] = text
	s.mu.Unlock()

	s.logger.Info().
		Str("num_factura", rep.NumFactura).
		Str("profile", string(eng.Profile())).
		Int("findings", len(rep.Findings)).
		Msg("invoice validated")

	return rep
}

// ReportFor retrieves a previously computed report by invoice number,
// checking the in-memory cache first and the archive second.
func (s *Service) ReportFor(ctx context.Context, numFactura string) (string, error) {
	s.mu.RLock()
	text, ok := s.cache[numFactura]
	s.mu.RUnlock()
	if ok {
		return text, nil
	}

	if s.repo != nil {
		stored, err := s.repo.GetByNumFactura(ctx, numFactura)
		if err == nil {
			return stored.Content, nil
		}
	}
	return "", ErrReportNotFound
}

// ListReports returns archived reports, newest first.
func (s *Service) ListReports(ctx context.Context, limit, offset int) ([]*StoredReport, int, error) {
	if s.repo == nil {
		return nil, 0, nil
	}
	return s.repo.List(ctx, limit, offset)
}
