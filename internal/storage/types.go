package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// RackDTO is the API view of one rack with its devices.
type RackDTO struct {
	ID         uuid.UUID   `json:"id"`
	ReportID   uuid.UUID   `json:"report_id"`
	Name       string      `json:"name"`
	Location   string      `json:"location"`
	UnitCount  int         `json:"unit_count"`
	PowerPorts int         `json:"power_ports"`
	Devices    []DeviceDTO `json:"devices"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// DeviceDTO is the API view of one mounted device.
type DeviceDTO struct {
	ID        uuid.UUID `json:"id"`
	RackID    uuid.UUID `json:"rack_id"`
	Label     string    `json:"label"`
	Type      string    `json:"type"`
	StartUnit int       `json:"start_unit"`
	UnitSpan  int       `json:"unit_span"`
	PortsUsed int       `json:"ports_used"`
	CreatedAt time.Time `json:"created_at"`
}

// LayoutUnit is one slot of the per-unit occupancy view. DeviceID is nil for
// empty units.
type LayoutUnit struct {
	Unit     int        `json:"unit"`
	DeviceID *uuid.UUID `json:"device_id,omitempty"`
	Label    string     `json:"label,omitempty"`
	Type     string     `json:"type,omitempty"`
}

// LayoutDTO is the rack elevation the layout endpoint returns.
type LayoutDTO struct {
	RackID     uuid.UUID    `json:"rack_id"`
	Name       string       `json:"name"`
	UnitCount  int          `json:"unit_count"`
	PowerPorts int          `json:"power_ports"`
	PortsUsed  int          `json:"ports_used"`
	FreePorts  int          `json:"free_ports"`
	Units      []LayoutUnit `json:"units"`
}

// CreateRackInput carries the fields to document a new rack.
type CreateRackInput struct {
	Name       string `json:"name" validate:"required"`
	Location   string `json:"location"`
	UnitCount  int    `json:"unit_count" validate:"omitempty,min=1,max=100"`
	PowerPorts int    `json:"power_ports" validate:"omitempty,min=0"`
}

// UpdateRackInput is a partial update. Nil fields are left untouched.
type UpdateRackInput struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Location   *string `json:"location"`
	UnitCount  *int    `json:"unit_count" validate:"omitempty,min=1,max=100"`
	PowerPorts *int    `json:"power_ports" validate:"omitempty,min=0"`
}

// AddDeviceInput carries the fields to mount a device in a rack.
type AddDeviceInput struct {
	Label     string `json:"label" validate:"required"`
	Type      string `json:"type" validate:"required"`
	StartUnit int    `json:"start_unit" validate:"required,min=1"`
	UnitSpan  int    `json:"unit_span" validate:"omitempty,min=1"`
	PortsUsed int    `json:"ports_used" validate:"omitempty,min=0"`
}

func rackDTOFromModel(rack models.Rack, devices []models.RackDevice) RackDTO {
	dtos := make([]DeviceDTO, 0, len(devices))
	for _, device := range devices {
		dtos = append(dtos, deviceDTOFromModel(device))
	}
	return RackDTO{
		ID:         rack.ID,
		ReportID:   rack.ReportID,
		Name:       rack.Name,
		Location:   rack.Location,
		UnitCount:  rack.UnitCount,
		PowerPorts: rack.PowerPorts,
		Devices:    dtos,
		CreatedAt:  rack.CreatedAt,
		UpdatedAt:  rack.UpdatedAt,
	}
}

func deviceDTOFromModel(device models.RackDevice) DeviceDTO {
	return DeviceDTO{
		ID:        device.ID,
		RackID:    device.RackID,
		Label:     device.Label,
		Type:      device.Type.String(),
		StartUnit: device.StartUnit,
		UnitSpan:  device.UnitSpan,
		PortsUsed: device.PortsUsed,
		CreatedAt: device.CreatedAt,
	}
}
