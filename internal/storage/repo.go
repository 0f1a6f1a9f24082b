package storage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// Repository encapsulates rack and device persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a storage repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListRacksByReport returns a report's racks in creation order.
func (r *Repository) ListRacksByReport(ctx context.Context, reportID uuid.UUID) ([]models.Rack, error) {
	var racks []models.Rack
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&racks).
		Error
	return racks, err
}

// FindRackByID loads one rack.
func (r *Repository) FindRackByID(ctx context.Context, id uuid.UUID) (*models.Rack, error) {
	var rack models.Rack
	if err := r.db.WithContext(ctx).First(&rack, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rack, nil
}

// CreateRack inserts one rack.
func (r *Repository) CreateRack(ctx context.Context, rack *models.Rack) error {
	return r.db.WithContext(ctx).Create(rack).Error
}

// SaveRack persists every field of the rack.
func (r *Repository) SaveRack(ctx context.Context, rack *models.Rack) error {
	return r.db.WithContext(ctx).Save(rack).Error
}

// DeleteRack removes the rack and its devices.
func (r *Repository) DeleteRack(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RackDevice{}, "rack_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rack{}, "id = ?", id).Error
	})
}

// ListDevices returns a rack's devices ordered bottom-up.
func (r *Repository) ListDevices(ctx context.Context, rackID uuid.UUID) ([]models.RackDevice, error) {
	var devices []models.RackDevice
	err := r.db.WithContext(ctx).
		Where("rack_id = ?", rackID).
		Order("start_unit ASC").
		Find(&devices).
		Error
	return devices, err
}

// FindDeviceByID loads one device.
func (r *Repository) FindDeviceByID(ctx context.Context, id uuid.UUID) (*models.RackDevice, error) {
	var device models.RackDevice
	if err := r.db.WithContext(ctx).First(&device, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

// CreateDevice inserts one device.
func (r *Repository) CreateDevice(ctx context.Context, device *models.RackDevice) error {
	return r.db.WithContext(ctx).Create(device).Error
}

// DeleteDevice removes one device by id.
func (r *Repository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.RackDevice{}, "id = ?", id).Error
}
