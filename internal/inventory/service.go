package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

// defaultRowNames seeds every new report with the builtin equipment types the
// field form tracks. Builtin rows cannot be deleted, only zeroed out.
var defaultRowNames = []string{
	"PCs",
	"Laptops",
	"Monitors",
	"Printers",
	"Phones",
	"Scanners",
	"Docking Stations",
}

// SummaryCache is the subset of the redis client the service needs.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	SummaryKey(reportID string) string
	CounterKey(name string) string
}

// importCounter counts completed legacy imports across all reports.
const importCounter = "inventory_imports"

// ReportChecker verifies a report exists before rows are touched.
type ReportChecker interface {
	Exists(ctx context.Context, reportID uuid.UUID) (bool, error)
}

// ServiceParams groups dependencies for the inventory service.
type ServiceParams struct {
	Repo            *Repository
	Reports         ReportChecker
	Cache           SummaryCache
	Logger          *logger.Logger
	SummaryCacheTTL time.Duration
}

// Service exposes business rules for inventory row management.
type Service interface {
	ListRows(ctx context.Context, reportID uuid.UUID) (RowsPageDTO, error)
	AddRow(ctx context.Context, reportID uuid.UUID, name string) (RowDTO, error)
	UpdateRow(ctx context.Context, reportID, rowID uuid.UUID, patch RowPatch) (RowDTO, error)
	DeleteRow(ctx context.Context, reportID, rowID uuid.UUID) error
	ReportSummary(ctx context.Context, reportID uuid.UUID) (Summary, error)
	ImportRows(ctx context.Context, reportID uuid.UUID, rows []ImportRow) (RowsPageDTO, error)
}

type service struct {
	repo     *Repository
	reports  ReportChecker
	cache    SummaryCache
	logg     *logger.Logger
	cacheTTL time.Duration
}

// NewService builds an inventory service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory repo is required")
	}
	if params.Reports == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report checker is required")
	}
	ttl := params.SummaryCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &service{
		repo:     params.Repo,
		reports:  params.Reports,
		cache:    params.Cache,
		logg:     params.Logger,
		cacheTTL: ttl,
	}, nil
}

// SeedRows builds the builtin row set for a fresh report. Callers insert the
// result inside the same transaction that creates the report.
func SeedRows(reportID uuid.UUID) []models.InventoryRow {
	rows := make([]models.InventoryRow, 0, len(defaultRowNames))
	for i, name := range defaultRowNames {
		rows = append(rows, models.InventoryRow{
			ID:       uuid.New(),
			ReportID: reportID,
			Name:     name,
			Builtin:  true,
			Position: i,
		})
	}
	return rows
}

// ListRows returns every row of the report with derived totals and the summary.
func (s *service) ListRows(ctx context.Context, reportID uuid.UUID) (RowsPageDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return RowsPageDTO{}, err
	}
	rows, err := s.repo.ListByReport(ctx, reportID)
	if err != nil {
		return RowsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory rows")
	}
	return buildRowsPage(reportID, rows), nil
}

// AddRow appends a custom equipment row with all counters at zero.
func (s *service) AddRow(ctx context.Context, reportID uuid.UUID, name string) (RowDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return RowDTO{}, err
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return RowDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	position, err := s.repo.NextPosition(ctx, reportID)
	if err != nil {
		return RowDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute row position")
	}

	row := models.InventoryRow{
		ID:       uuid.New(),
		ReportID: reportID,
		Name:     trimmed,
		Position: position,
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		return RowDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory row")
	}

	s.invalidateSummary(ctx, reportID)
	return rowDTOFromModel(row), nil
}

// UpdateRow applies a partial update to one row. Counter values are sanitized
// field-by-field; the response carries the stored (coerced) values so callers
// can surface any clamping to the technician.
func (s *service) UpdateRow(ctx context.Context, reportID, rowID uuid.UUID, patch RowPatch) (RowDTO, error) {
	row, err := s.loadRow(ctx, reportID, rowID)
	if err != nil {
		return RowDTO{}, err
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return RowDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
		}
		row.Name = trimmed
	}

	counts := countsFromModel(*row)
	patchCounts(&counts, patch)
	applyCounts(row, counts)

	if err := s.repo.Save(ctx, row); err != nil {
		return RowDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory row")
	}

	s.invalidateSummary(ctx, reportID)
	return rowDTOFromModel(*row), nil
}

// DeleteRow removes a custom row. Builtin rows from the seed set stay.
func (s *service) DeleteRow(ctx context.Context, reportID, rowID uuid.UUID) error {
	row, err := s.loadRow(ctx, reportID, rowID)
	if err != nil {
		return err
	}
	if row.Builtin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "built-in inventory rows cannot be deleted")
	}
	if err := s.repo.Delete(ctx, rowID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory row")
	}
	s.invalidateSummary(ctx, reportID)
	return nil
}

// ReportSummary returns the report-level totals, from cache when possible.
// Recomputation is pure, so a stale or missing cache entry is never a
// correctness problem.
func (s *service) ReportSummary(ctx context.Context, reportID uuid.UUID) (Summary, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return Summary{}, err
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, s.cache.SummaryKey(reportID.String())); err == nil {
			var summary Summary
			if jsonErr := json.Unmarshal([]byte(cached), &summary); jsonErr == nil {
				return summary, nil
			}
		}
	}

	rows, err := s.repo.ListByReport(ctx, reportID)
	if err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory rows")
	}

	counts := make([]Counts, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, countsFromModel(row))
	}
	summary := Summarize(counts)

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(summary); jsonErr == nil {
			if err := s.cache.Set(ctx, s.cache.SummaryKey(reportID.String()), string(payload), s.cacheTTL); err != nil && s.logg != nil {
				s.logg.Warn(ctx, "summary cache write failed")
			}
		}
	}

	return summary, nil
}

// ImportRows appends rows from a legacy report export, normalizing any
// accepted shape before storage.
func (s *service) ImportRows(ctx context.Context, reportID uuid.UUID, importRows []ImportRow) (RowsPageDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return RowsPageDTO{}, err
	}
	if len(importRows) == 0 {
		return RowsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "at least one row is required")
	}

	position, err := s.repo.NextPosition(ctx, reportID)
	if err != nil {
		return RowsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute row position")
	}

	records := make([]models.InventoryRow, 0, len(importRows))
	for i, imported := range importRows {
		name := strings.TrimSpace(imported.Name)
		if name == "" {
			return RowsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required").
				WithDetails(map[string]any{"row": i})
		}
		record := models.InventoryRow{
			ID:       uuid.New(),
			ReportID: reportID,
			Name:     name,
			Position: position + i,
		}
		applyCounts(&record, Normalize(imported.Counts))
		records = append(records, record)
	}

	if err := s.repo.CreateBatch(ctx, nil, records); err != nil {
		return RowsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "import inventory rows")
	}

	s.invalidateSummary(ctx, reportID)

	if s.cache != nil {
		if _, err := s.cache.Incr(ctx, s.cache.CounterKey(importCounter)); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "import counter increment failed")
		}
	}

	rows, err := s.repo.ListByReport(ctx, reportID)
	if err != nil {
		return RowsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory rows")
	}
	return buildRowsPage(reportID, rows), nil
}

func (s *service) ensureReport(ctx context.Context, reportID uuid.UUID) error {
	if reportID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "report id is required")
	}
	exists, err := s.reports.Exists(ctx, reportID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
	}
	return nil
}

func (s *service) loadRow(ctx context.Context, reportID, rowID uuid.UUID) (*models.InventoryRow, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return nil, err
	}
	if rowID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "row id is required")
	}
	row, err := s.repo.FindByID(ctx, rowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory row not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory row")
	}
	if row.ReportID != reportID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory row not found")
	}
	return row, nil
}

func (s *service) invalidateSummary(ctx context.Context, reportID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.SummaryKey(reportID.String())); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "summary cache invalidation failed")
	}
}

func patchCounts(counts *Counts, patch RowPatch) {
	if patch.InUseByEmployees != nil {
		counts.InUseByEmployees = Sanitize(patch.InUseByEmployees)
	}
	if patch.Training != nil {
		counts.Training = Sanitize(patch.Training)
	}
	if patch.ConferenceRoom != nil {
		counts.ConferenceRoom = Sanitize(patch.ConferenceRoom)
	}
	if patch.GSMOffice != nil {
		counts.GSMOffice = Sanitize(patch.GSMOffice)
	}
	if patch.ProspectingStation != nil {
		counts.ProspectingStation = Sanitize(patch.ProspectingStation)
	}
	if patch.ApplicantStation != nil {
		counts.ApplicantStation = Sanitize(patch.ApplicantStation)
	}
	if patch.VisitorStation != nil {
		counts.VisitorStation = Sanitize(patch.VisitorStation)
	}
	if patch.Other != nil {
		counts.Other = Sanitize(patch.Other)
	}
	if patch.SparesOnFloor != nil {
		counts.SparesOnFloor = Sanitize(patch.SparesOnFloor)
	}
	if patch.SparesInStorage != nil {
		counts.SparesInStorage = Sanitize(patch.SparesInStorage)
	}
	if patch.Broken != nil {
		counts.Broken = Sanitize(patch.Broken)
	}
}

func buildRowsPage(reportID uuid.UUID, rows []models.InventoryRow) RowsPageDTO {
	dtos := make([]RowDTO, 0, len(rows))
	counts := make([]Counts, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, rowDTOFromModel(row))
		counts = append(counts, countsFromModel(row))
	}
	return RowsPageDTO{Rows: dtos, Summary: Summarize(counts)}
}
