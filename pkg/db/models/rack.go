package models

import (
	"time"

	"github.com/google/uuid"
)

// Rack is one data-closet rack documented during a visit.
type Rack struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReportID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:text;not null"`
	Location   string    `gorm:"type:text"`
	UnitCount  int       `gorm:"not null;default:42"`
	PowerPorts int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}
