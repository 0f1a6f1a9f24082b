package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is one office-site visit document. Every other record hangs off it.
type Report struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SiteName       string    `gorm:"type:text;not null"`
	OfficeLocation string    `gorm:"type:text"`
	TechnicianName string    `gorm:"type:text;not null"`
	VisitDate      time.Time `gorm:"type:date;not null"`
	Notes          string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}
