package reports

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// Repository encapsulates visit report persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a report repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns reports newest-first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Order("visit_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).
		Error
	return reports, err
}

// FindByID loads one report.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// Exists reports whether the given report id is present.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}

// CreateTx inserts the report on the provided transaction handle.
func (r *Repository) CreateTx(ctx context.Context, tx *gorm.DB, report *models.Report) error {
	return tx.WithContext(ctx).Create(report).Error
}

// Save persists every field of the report.
func (r *Repository) Save(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// Delete removes the report. Child rows go with it via FK cascade; SQLite
// test databases delete children explicitly since AutoMigrate does not
// enforce the cascade.
func (r *Repository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	conn := tx
	if conn == nil {
		conn = r.db
	}
	return conn.WithContext(ctx).Delete(&models.Report{}, "id = ?", id).Error
}
