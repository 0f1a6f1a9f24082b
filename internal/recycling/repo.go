package recycling

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// Repository encapsulates recycling log persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a recycling repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByReport returns a report's entries in creation order.
func (r *Repository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]models.RecyclingEntry, error) {
	var entries []models.RecyclingEntry
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&entries).
		Error
	return entries, err
}

// FindByID loads one entry.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RecyclingEntry, error) {
	var entry models.RecyclingEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts one entry.
func (r *Repository) Create(ctx context.Context, entry *models.RecyclingEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Save persists every field of the entry.
func (r *Repository) Save(ctx context.Context, entry *models.RecyclingEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes one entry by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.RecyclingEntry{}, "id = ?", id).Error
}
