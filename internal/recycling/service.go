package recycling

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/internal/inventory"
	"github.com/rss-it/visitreport-backend/pkg/db/models"
	"github.com/rss-it/visitreport-backend/pkg/enums"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

// ReportChecker verifies a report exists before entries are touched.
type ReportChecker interface {
	Exists(ctx context.Context, reportID uuid.UUID) (bool, error)
}

// ServiceParams groups dependencies for the recycling service.
type ServiceParams struct {
	Repo    *Repository
	Reports ReportChecker
	Logger  *logger.Logger
}

// Service exposes the recycling log.
type Service interface {
	List(ctx context.Context, reportID uuid.UUID) ([]EntryDTO, error)
	Create(ctx context.Context, reportID uuid.UUID, input CreateEntryInput) (EntryDTO, error)
	Update(ctx context.Context, entryID uuid.UUID, input UpdateEntryInput) (EntryDTO, error)
	Delete(ctx context.Context, entryID uuid.UUID) error
	Totals(ctx context.Context, reportID uuid.UUID) (TotalsDTO, error)
}

type service struct {
	repo    *Repository
	reports ReportChecker
	logg    *logger.Logger
}

// NewService builds a recycling service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recycling repo is required")
	}
	if params.Reports == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report checker is required")
	}
	return &service{
		repo:    params.Repo,
		reports: params.Reports,
		logg:    params.Logger,
	}, nil
}

// List returns the report's recycling log in creation order.
func (s *service) List(ctx context.Context, reportID uuid.UUID) ([]EntryDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListByReport(ctx, reportID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recycling entries")
	}
	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, dtoFromModel(entry))
	}
	return dtos, nil
}

// Create logs a handoff. Quantity goes through the inventory sanitizer so
// string input from the form degrades to zero instead of failing.
func (s *service) Create(ctx context.Context, reportID uuid.UUID, input CreateEntryInput) (EntryDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return EntryDTO{}, err
	}

	material, err := enums.ParseMaterial(input.Material)
	if err != nil {
		return EntryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid recycling material").
			WithDetails(map[string]any{"material": input.Material})
	}
	weight, err := parseWeight(input.WeightLbs)
	if err != nil {
		return EntryDTO{}, err
	}

	entry := models.RecyclingEntry{
		ID:              uuid.New(),
		ReportID:        reportID,
		Material:        material,
		Quantity:        inventory.Sanitize(input.Quantity),
		WeightLbs:       weight,
		PickupScheduled: input.PickupScheduled,
		Notes:           input.Notes,
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return EntryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recycling entry")
	}
	return dtoFromModel(entry), nil
}

// Update applies a partial update to one entry.
func (s *service) Update(ctx context.Context, entryID uuid.UUID, input UpdateEntryInput) (EntryDTO, error) {
	entry, err := s.load(ctx, entryID)
	if err != nil {
		return EntryDTO{}, err
	}

	if input.Material != nil {
		material, err := enums.ParseMaterial(*input.Material)
		if err != nil {
			return EntryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid recycling material").
				WithDetails(map[string]any{"material": *input.Material})
		}
		entry.Material = material
	}
	if input.Quantity != nil {
		entry.Quantity = inventory.Sanitize(input.Quantity)
	}
	if input.WeightLbs != nil {
		weight, err := parseWeight(*input.WeightLbs)
		if err != nil {
			return EntryDTO{}, err
		}
		entry.WeightLbs = weight
	}
	if input.PickupScheduled != nil {
		entry.PickupScheduled = *input.PickupScheduled
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return EntryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update recycling entry")
	}
	return dtoFromModel(*entry), nil
}

// Delete removes one entry.
func (s *service) Delete(ctx context.Context, entryID uuid.UUID) error {
	if _, err := s.load(ctx, entryID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, entryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete recycling entry")
	}
	return nil
}

// Totals rolls the log up per material plus overall sums.
func (s *service) Totals(ctx context.Context, reportID uuid.UUID) (TotalsDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return TotalsDTO{}, err
	}
	entries, err := s.repo.ListByReport(ctx, reportID)
	if err != nil {
		return TotalsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recycling entries")
	}

	quantities := make(map[enums.Material]int, len(entries))
	weights := make(map[enums.Material]decimal.Decimal, len(entries))
	order := make([]enums.Material, 0, len(entries))
	totalQuantity := 0
	totalWeight := decimal.Zero

	for _, entry := range entries {
		if _, seen := quantities[entry.Material]; !seen {
			order = append(order, entry.Material)
			weights[entry.Material] = decimal.Zero
		}
		quantities[entry.Material] += entry.Quantity
		weights[entry.Material] = weights[entry.Material].Add(entry.WeightLbs)
		totalQuantity += entry.Quantity
		totalWeight = totalWeight.Add(entry.WeightLbs)
	}

	byMaterial := make([]MaterialTotal, 0, len(order))
	for _, material := range order {
		byMaterial = append(byMaterial, MaterialTotal{
			Material:  material.String(),
			Quantity:  quantities[material],
			WeightLbs: weights[material],
		})
	}

	return TotalsDTO{
		ByMaterial:     byMaterial,
		TotalQuantity:  totalQuantity,
		TotalWeightLbs: totalWeight,
	}, nil
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

func (s *service) load(ctx context.Context, entryID uuid.UUID) (*models.RecyclingEntry, error) {
	if entryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry id is required")
	}
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recycling entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recycling entry")
	}
	return entry, nil
}

func parseWeight(raw string) (decimal.Decimal, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if trimmed == "" {
		return decimal.Zero, nil
	}
	weight, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "weight must be a decimal number").
			WithDetails(map[string]any{"weight_lbs": raw})
	}
	if weight.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "weight cannot be negative").
			WithDetails(map[string]any{"weight_lbs": raw})
	}
	return weight.Round(2), nil
}
