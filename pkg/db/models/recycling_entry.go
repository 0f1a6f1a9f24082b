package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rss-it/visitreport-backend/pkg/enums"
)

// RecyclingEntry logs equipment handed off for recycling during a visit.
// Weight is pounds with two decimal places.
type RecyclingEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReportID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Material        enums.Material  `gorm:"type:recycling_material;not null"`
	Quantity        int             `gorm:"not null;default:0"`
	WeightLbs       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	PickupScheduled bool            `gorm:"not null;default:false"`
	Notes           string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}
