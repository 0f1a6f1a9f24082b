package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/internal/inventory"
	"github.com/rss-it/visitreport-backend/pkg/db/models"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// TxRunner runs fn inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RowSeeder inserts the builtin inventory rows for a fresh report.
type RowSeeder interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []models.InventoryRow) error
}

// ServiceParams groups dependencies for the report service.
type ServiceParams struct {
	Repo   *Repository
	Tx     TxRunner
	Rows   RowSeeder
	Logger *logger.Logger
}

// Service exposes visit report management.
type Service interface {
	Create(ctx context.Context, input CreateReportInput) (ReportDTO, error)
	List(ctx context.Context, limit, offset int) ([]ReportDTO, error)
	Get(ctx context.Context, id uuid.UUID) (ReportDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateReportInput) (ReportDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo *Repository
	tx   TxRunner
	rows RowSeeder
	logg *logger.Logger
}

// NewService builds a report service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if params.Rows == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "row seeder is required")
	}
	return &service{
		repo: params.Repo,
		tx:   params.Tx,
		rows: params.Rows,
		logg: params.Logger,
	}, nil
}

// Create opens a new report and seeds its builtin inventory rows in one
// transaction. A report never exists without its default rows.
func (s *service) Create(ctx context.Context, input CreateReportInput) (ReportDTO, error) {
	siteName := strings.TrimSpace(input.SiteName)
	techName := strings.TrimSpace(input.TechnicianName)
	if siteName == "" {
		return ReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "site name is required")
	}
	if techName == "" {
		return ReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "technician name is required")
	}
	visitDate, err := parseVisitDate(input.VisitDate)
	if err != nil {
		return ReportDTO{}, err
	}

	report := models.Report{
		ID:             uuid.New(),
		SiteName:       siteName,
		OfficeLocation: strings.TrimSpace(input.OfficeLocation),
		TechnicianName: techName,
		VisitDate:      visitDate,
		Notes:          input.Notes,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, &report); err != nil {
			return err
		}
		return s.rows.CreateBatch(ctx, tx, inventory.SeedRows(report.ID))
	})
	if err != nil {
		return ReportDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create report")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithReportID(ctx, report.ID.String()), "report created")
	}
	return dtoFromModel(report), nil
}

// List returns reports newest-first.
func (s *service) List(ctx context.Context, limit, offset int) ([]ReportDTO, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	records, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reports")
	}
	dtos := make([]ReportDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, dtoFromModel(record))
	}
	return dtos, nil
}

// Get loads one report.
func (s *service) Get(ctx context.Context, id uuid.UUID) (ReportDTO, error) {
	report, err := s.load(ctx, id)
	if err != nil {
		return ReportDTO{}, err
	}
	return dtoFromModel(*report), nil
}

// Update applies a partial update to the report header fields.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateReportInput) (ReportDTO, error) {
	report, err := s.load(ctx, id)
	if err != nil {
		return ReportDTO{}, err
	}

	if input.SiteName != nil {
		trimmed := strings.TrimSpace(*input.SiteName)
		if trimmed == "" {
			return ReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "site name is required")
		}
		report.SiteName = trimmed
	}
	if input.TechnicianName != nil {
		trimmed := strings.TrimSpace(*input.TechnicianName)
		if trimmed == "" {
			return ReportDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "technician name is required")
		}
		report.TechnicianName = trimmed
	}
	if input.OfficeLocation != nil {
		report.OfficeLocation = strings.TrimSpace(*input.OfficeLocation)
	}
	if input.VisitDate != nil {
		visitDate, err := parseVisitDate(*input.VisitDate)
		if err != nil {
			return ReportDTO{}, err
		}
		report.VisitDate = visitDate
	}
	if input.Notes != nil {
		report.Notes = *input.Notes
	}

	if err := s.repo.Save(ctx, report); err != nil {
		return ReportDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update report")
	}
	return dtoFromModel(*report), nil
}

// Delete removes the report and everything scoped to it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete report")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithReportID(ctx, id.String()), "report deleted")
	}
	return nil
}

// Exists satisfies the inventory package's report checker.
func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	return s.repo.Exists(ctx, id)
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report id is required")
	}
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	return report, nil
}

func parseVisitDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "visit date is required")
	}
	parsed, err := time.Parse(visitDateLayout, trimmed)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "visit date must be YYYY-MM-DD").
			WithDetails(map[string]any{"visit_date": raw})
	}
	return parsed, nil
}
