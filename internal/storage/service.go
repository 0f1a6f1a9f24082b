package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
	"github.com/rss-it/visitreport-backend/pkg/enums"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
	"github.com/rss-it/visitreport-backend/pkg/logger"
)

const defaultUnitCount = 42

// ReportChecker verifies a report exists before racks are touched.
type ReportChecker interface {
	Exists(ctx context.Context, reportID uuid.UUID) (bool, error)
}

// ServiceParams groups dependencies for the storage service.
type ServiceParams struct {
	Repo    *Repository
	Reports ReportChecker
	Logger  *logger.Logger
}

// Service exposes rack and device management.
type Service interface {
	ListRacks(ctx context.Context, reportID uuid.UUID) ([]RackDTO, error)
	CreateRack(ctx context.Context, reportID uuid.UUID, input CreateRackInput) (RackDTO, error)
	UpdateRack(ctx context.Context, rackID uuid.UUID, input UpdateRackInput) (RackDTO, error)
	DeleteRack(ctx context.Context, rackID uuid.UUID) error
	Layout(ctx context.Context, rackID uuid.UUID) (LayoutDTO, error)
	AddDevice(ctx context.Context, rackID uuid.UUID, input AddDeviceInput) (DeviceDTO, error)
	RemoveDevice(ctx context.Context, deviceID uuid.UUID) error
}

type service struct {
	repo    *Repository
	reports ReportChecker
	logg    *logger.Logger
}

// NewService builds a storage service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage repo is required")
	}
	if params.Reports == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report checker is required")
	}
	return &service{
		repo:    params.Repo,
		reports: params.Reports,
		logg:    params.Logger,
	}, nil
}

// ListRacks returns every rack of the report with its devices.
func (s *service) ListRacks(ctx context.Context, reportID uuid.UUID) ([]RackDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return nil, err
	}
	racks, err := s.repo.ListRacksByReport(ctx, reportID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list racks")
	}
	dtos := make([]RackDTO, 0, len(racks))
	for _, rack := range racks {
		devices, err := s.repo.ListDevices(ctx, rack.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rack devices")
		}
		dtos = append(dtos, rackDTOFromModel(rack, devices))
	}
	return dtos, nil
}

// CreateRack documents a new rack. Unit count defaults to a full-height 42U
// rack when omitted.
func (s *service) CreateRack(ctx context.Context, reportID uuid.UUID, input CreateRackInput) (RackDTO, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return RackDTO{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return RackDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "rack name is required")
	}
	unitCount := input.UnitCount
	if unitCount <= 0 {
		unitCount = defaultUnitCount
	}
	if input.PowerPorts < 0 {
		return RackDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "power ports cannot be negative")
	}

	rack := models.Rack{
		ID:         uuid.New(),
		ReportID:   reportID,
		Name:       name,
		Location:   strings.TrimSpace(input.Location),
		UnitCount:  unitCount,
		PowerPorts: input.PowerPorts,
	}
	if err := s.repo.CreateRack(ctx, &rack); err != nil {
		return RackDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rack")
	}
	return rackDTOFromModel(rack, nil), nil
}

// UpdateRack applies a partial update. Shrinking the rack or its PDU is
// rejected when the current devices would no longer satisfy the layout rules.
func (s *service) UpdateRack(ctx context.Context, rackID uuid.UUID, input UpdateRackInput) (RackDTO, error) {
	rack, err := s.loadRack(ctx, rackID)
	if err != nil {
		return RackDTO{}, err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return RackDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "rack name is required")
		}
		rack.Name = trimmed
	}
	if input.Location != nil {
		rack.Location = strings.TrimSpace(*input.Location)
	}
	if input.UnitCount != nil {
		if *input.UnitCount < 1 {
			return RackDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unit count must be at least 1")
		}
		rack.UnitCount = *input.UnitCount
	}
	if input.PowerPorts != nil {
		if *input.PowerPorts < 0 {
			return RackDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "power ports cannot be negative")
		}
		rack.PowerPorts = *input.PowerPorts
	}

	devices, err := s.repo.ListDevices(ctx, rackID)
	if err != nil {
		return RackDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rack devices")
	}
	if layoutErr := ValidateLayout(*rack, devices); layoutErr != nil {
		return RackDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "rack update breaks current layout").
			WithDetails(violationList(layoutErr))
	}

	if err := s.repo.SaveRack(ctx, rack); err != nil {
		return RackDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rack")
	}
	return rackDTOFromModel(*rack, devices), nil
}

// DeleteRack removes the rack and every device mounted in it.
func (s *service) DeleteRack(ctx context.Context, rackID uuid.UUID) error {
	if _, err := s.loadRack(ctx, rackID); err != nil {
		return err
	}
	if err := s.repo.DeleteRack(ctx, rackID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete rack")
	}
	return nil
}

// Layout returns the per-unit elevation view of the rack.
func (s *service) Layout(ctx context.Context, rackID uuid.UUID) (LayoutDTO, error) {
	rack, err := s.loadRack(ctx, rackID)
	if err != nil {
		return LayoutDTO{}, err
	}
	devices, err := s.repo.ListDevices(ctx, rackID)
	if err != nil {
		return LayoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rack devices")
	}
	return BuildLayout(*rack, devices), nil
}

// AddDevice mounts a device after validating placement against every rule at
// once.
func (s *service) AddDevice(ctx context.Context, rackID uuid.UUID, input AddDeviceInput) (DeviceDTO, error) {
	rack, err := s.loadRack(ctx, rackID)
	if err != nil {
		return DeviceDTO{}, err
	}

	label := strings.TrimSpace(input.Label)
	if label == "" {
		return DeviceDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "device label is required")
	}
	deviceType, err := enums.ParseDeviceType(input.Type)
	if err != nil {
		return DeviceDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid device type").
			WithDetails(map[string]any{"type": input.Type})
	}

	unitSpan := input.UnitSpan
	if unitSpan <= 0 {
		unitSpan = 1
	}
	candidate := models.RackDevice{
		ID:        uuid.New(),
		RackID:    rackID,
		Label:     label,
		Type:      deviceType,
		StartUnit: input.StartUnit,
		UnitSpan:  unitSpan,
		PortsUsed: input.PortsUsed,
	}

	existing, err := s.repo.ListDevices(ctx, rackID)
	if err != nil {
		return DeviceDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rack devices")
	}
	if placementErr := ValidatePlacement(*rack, existing, candidate); placementErr != nil {
		return DeviceDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "device placement is invalid").
			WithDetails(violationList(placementErr))
	}

	if err := s.repo.CreateDevice(ctx, &candidate); err != nil {
		return DeviceDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rack device")
	}
	return deviceDTOFromModel(candidate), nil
}

// RemoveDevice unmounts one device.
func (s *service) RemoveDevice(ctx context.Context, deviceID uuid.UUID) error {
	if deviceID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	if _, err := s.repo.FindDeviceByID(ctx, deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "device not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load device")
	}
	if err := s.repo.DeleteDevice(ctx, deviceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete device")
	}
	return nil
}

func (s *service) ensureReport(ctx context.Context, reportID uuid.UUID) error {
	if reportID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "report id is required")
	}
	exists, err := s.reports.Exists(ctx, reportID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
	}
	return nil
}

func (s *service) loadRack(ctx context.Context, rackID uuid.UUID) (*models.Rack, error) {
	if rackID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rack id is required")
	}
	rack, err := s.repo.FindRackByID(ctx, rackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rack not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rack")
	}
	return rack, nil
}

// violationList flattens a multierr into per-violation strings for the error
// details payload.
func violationList(err error) map[string]any {
	flat := make([]string, 0, 4)
	for _, violation := range multierr.Errors(err) {
		flat = append(flat, violation.Error())
	}
	return map[string]any{"violations": flat}
}
