package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rss-it/visitreport-backend/pkg/enums"
)

// Issue is one tracked finding: an issue, a repair, or a recommendation.
type Issue struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ReportID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Kind        enums.IssueKind     `gorm:"type:issue_kind;not null"`
	Title       string              `gorm:"type:text;not null"`
	Description string              `gorm:"type:text"`
	Priority    enums.IssuePriority `gorm:"type:issue_priority;not null;default:medium"`
	Status      enums.IssueStatus   `gorm:"type:issue_status;not null;default:open"`
	CreatedAt   time.Time           `gorm:"autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime"`
}
