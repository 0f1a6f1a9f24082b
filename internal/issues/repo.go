package issues

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
	"github.com/rss-it/visitreport-backend/pkg/enums"
)

// Repository encapsulates issue persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an issue repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByReport returns a report's issues newest-first, optionally filtered by
// kind and status.
func (r *Repository) ListByReport(ctx context.Context, reportID uuid.UUID, kind enums.IssueKind, status enums.IssueStatus) ([]models.Issue, error) {
	query := r.db.WithContext(ctx).Where("report_id = ?", reportID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var issues []models.Issue
	err := query.Order("created_at DESC").Find(&issues).Error
	return issues, err
}

// FindByID loads one issue.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	if err := r.db.WithContext(ctx).First(&issue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// Create inserts one issue.
func (r *Repository) Create(ctx context.Context, issue *models.Issue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

// Save persists every field of the issue.
func (r *Repository) Save(ctx context.Context, issue *models.Issue) error {
	return r.db.WithContext(ctx).Save(issue).Error
}

// Delete removes one issue by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Issue{}, "id = ?", id).Error
}
