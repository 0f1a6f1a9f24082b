package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRow tracks the eleven usage counters for one equipment type within
// a report. Counters are already sanitized to non-negative integers before
// they reach this record; derived totals are never stored.
type InventoryRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:text;not null"`
	Builtin  bool      `gorm:"not null;default:false"`
	Position int       `gorm:"not null;default:0"`

	InUseByEmployees   int `gorm:"column:in_use_by_employees;not null;default:0"`
	Training           int `gorm:"not null;default:0"`
	ConferenceRoom     int `gorm:"not null;default:0"`
	GSMOffice          int `gorm:"column:gsm_office;not null;default:0"`
	ProspectingStation int `gorm:"not null;default:0"`
	ApplicantStation   int `gorm:"not null;default:0"`
	VisitorStation     int `gorm:"not null;default:0"`
	Other              int `gorm:"not null;default:0"`
	SparesOnFloor      int `gorm:"not null;default:0"`
	SparesInStorage    int `gorm:"not null;default:0"`
	Broken             int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
