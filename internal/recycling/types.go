package recycling

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// EntryDTO is the API view of one recycling log entry.
type EntryDTO struct {
	ID              uuid.UUID       `json:"id"`
	ReportID        uuid.UUID       `json:"report_id"`
	Material        string          `json:"material"`
	Quantity        int             `json:"quantity"`
	WeightLbs       decimal.Decimal `json:"weight_lbs"`
	PickupScheduled bool            `json:"pickup_scheduled"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateEntryInput carries the fields to log recycled equipment. Quantity
// accepts numbers or strings and is sanitized like inventory counters.
type CreateEntryInput struct {
	Material        string `json:"material" validate:"required"`
	Quantity        any    `json:"quantity"`
	WeightLbs       string `json:"weight_lbs"`
	PickupScheduled bool   `json:"pickup_scheduled"`
	Notes           string `json:"notes"`
}

// UpdateEntryInput is a partial update. Nil fields are left untouched.
type UpdateEntryInput struct {
	Material        *string `json:"material"`
	Quantity        any     `json:"quantity"`
	WeightLbs       *string `json:"weight_lbs"`
	PickupScheduled *bool   `json:"pickup_scheduled"`
	Notes           *string `json:"notes"`
}

// MaterialTotal is the per-material rollup.
type MaterialTotal struct {
	Material  string          `json:"material"`
	Quantity  int             `json:"quantity"`
	WeightLbs decimal.Decimal `json:"weight_lbs"`
}

// TotalsDTO is the rollup the totals endpoint returns.
type TotalsDTO struct {
	ByMaterial     []MaterialTotal `json:"by_material"`
	TotalQuantity  int             `json:"total_quantity"`
	TotalWeightLbs decimal.Decimal `json:"total_weight_lbs"`
}

func dtoFromModel(entry models.RecyclingEntry) EntryDTO {
	return EntryDTO{
		ID:              entry.ID,
		ReportID:        entry.ReportID,
		Material:        entry.Material.String(),
		Quantity:        entry.Quantity,
		WeightLbs:       entry.WeightLbs,
		PickupScheduled: entry.PickupScheduled,
		Notes:           entry.Notes,
		CreatedAt:       entry.CreatedAt,
		UpdatedAt:       entry.UpdatedAt,
	}
}
