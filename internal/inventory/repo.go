package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// Repository encapsulates inventory row persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByReport returns a report's rows in display order.
func (r *Repository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]models.InventoryRow, error) {
	var rows []models.InventoryRow
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindByID loads a single row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryRow, error) {
	var row models.InventoryRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts one row.
func (r *Repository) Create(ctx context.Context, row *models.InventoryRow) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateBatch inserts rows on the provided transaction handle, so report
// creation can seed builtin rows atomically.
func (r *Repository) CreateBatch(ctx context.Context, tx *gorm.DB, rows []models.InventoryRow) error {
	if len(rows) == 0 {
		return nil
	}
	conn := tx
	if conn == nil {
		conn = r.db
	}
	return conn.WithContext(ctx).Create(&rows).Error
}

// Save persists every field of the row.
func (r *Repository) Save(ctx context.Context, row *models.InventoryRow) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Delete removes one row by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.InventoryRow{}, "id = ?", id).Error
}

// NextPosition returns the position for a newly appended row.
func (r *Repository) NextPosition(ctx context.Context, reportID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.InventoryRow{}).
		Where("report_id = ?", reportID).
		Select("MAX(position)").
		Scan(&max).
		Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
