package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rss-it/visitreport-backend/pkg/enums"
)

// RackDevice occupies a contiguous span of units in a rack and consumes power
// ports from the rack PDU.
type RackDevice struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	RackID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Label     string           `gorm:"type:text;not null"`
	Type      enums.DeviceType `gorm:"type:device_type;not null"`
	StartUnit int              `gorm:"not null"`
	UnitSpan  int              `gorm:"not null;default:1"`
	PortsUsed int              `gorm:"not null;default:0"`
	CreatedAt time.Time        `gorm:"autoCreateTime"`
}
