package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
	pkgerrors "github.com/rss-it/visitreport-backend/pkg/errors"
)

type stubReports struct {
	exists bool
}

func (s stubReports) Exists(ctx context.Context, reportID uuid.UUID) (bool, error) {
	return s.exists, nil
}

func newTestService(t *testing.T) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Rack{}, &models.RackDevice{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Repo:    NewRepository(conn),
		Reports: stubReports{exists: true},
	})
	require.NoError(t, err)
	return svc
}

func TestCreateRackDefaults(t *testing.T) {
	svc := newTestService(t)

	rack, err := svc.CreateRack(context.Background(), uuid.New(), CreateRackInput{
		Name:       " Closet A ",
		PowerPorts: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Closet A", rack.Name)
	assert.Equal(t, 42, rack.UnitCount, "unit count defaults to a full rack")
	assert.Equal(t, 8, rack.PowerPorts)
	assert.Empty(t, rack.Devices)
}

func TestCreateRackRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateRack(context.Background(), uuid.New(), CreateRackInput{Name: "  "})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAddDeviceAndLayout(t *testing.T) {
	svc := newTestService(t)
	reportID := uuid.New()

	rack, err := svc.CreateRack(context.Background(), reportID, CreateRackInput{
		Name:       "Closet A",
		UnitCount:  12,
		PowerPorts: 6,
	})
	require.NoError(t, err)

	dev, err := svc.AddDevice(context.Background(), rack.ID, AddDeviceInput{
		Label:     "core-sw",
		Type:      "switch",
		StartUnit: 11,
		UnitSpan:  2,
		PortsUsed: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "switch", dev.Type)

	layout, err := svc.Layout(context.Background(), rack.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, layout.PortsUsed)
	assert.Equal(t, 4, layout.FreePorts)
	assert.Equal(t, "core-sw", layout.Units[0].Label, "unit 12 occupied")
	assert.Equal(t, "core-sw", layout.Units[1].Label, "unit 11 occupied")
	assert.Nil(t, layout.Units[2].DeviceID)
}

func TestAddDeviceRejectsBadPlacement(t *testing.T) {
	svc := newTestService(t)

	rack, err := svc.CreateRack(context.Background(), uuid.New(), CreateRackInput{
		Name:       "Closet B",
		UnitCount:  8,
		PowerPorts: 2,
	})
	require.NoError(t, err)

	_, err = svc.AddDevice(context.Background(), rack.ID, AddDeviceInput{
		Label:     "srv-1",
		Type:      "server",
		StartUnit: 7,
		UnitSpan:  4,
		PortsUsed: 3,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	violations, ok := details["violations"].([]string)
	require.True(t, ok)
	assert.Len(t, violations, 2, "fit and power violations surface together")
}

func TestAddDeviceRejectsUnknownType(t *testing.T) {
	svc := newTestService(t)

	rack, err := svc.CreateRack(context.Background(), uuid.New(), CreateRackInput{
		Name:       "Closet C",
		UnitCount:  8,
		PowerPorts: 2,
	})
	require.NoError(t, err)

	_, err = svc.AddDevice(context.Background(), rack.ID, AddDeviceInput{
		Label:     "mystery",
		Type:      "toaster",
		StartUnit: 1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateRackRejectsShrinkUnderDevices(t *testing.T) {
	svc := newTestService(t)

	rack, err := svc.CreateRack(context.Background(), uuid.New(), CreateRackInput{
		Name:       "Closet D",
		UnitCount:  12,
		PowerPorts: 6,
	})
	require.NoError(t, err)

	_, err = svc.AddDevice(context.Background(), rack.ID, AddDeviceInput{
		Label:     "srv-1",
		Type:      "server",
		StartUnit: 10,
		UnitSpan:  2,
		PortsUsed: 1,
	})
	require.NoError(t, err)

	smaller := 8
	_, err = svc.UpdateRack(context.Background(), rack.ID, UpdateRackInput{UnitCount: &smaller})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	bigger := 20
	updated, err := svc.UpdateRack(context.Background(), rack.ID, UpdateRackInput{UnitCount: &bigger})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.UnitCount)
}

func TestRemoveDevice(t *testing.T) {
	svc := newTestService(t)

	rack, err := svc.CreateRack(context.Background(), uuid.New(), CreateRackInput{
		Name:       "Closet E",
		UnitCount:  12,
		PowerPorts: 6,
	})
	require.NoError(t, err)

	dev, err := svc.AddDevice(context.Background(), rack.ID, AddDeviceInput{
		Label:     "srv-1",
		Type:      "server",
		StartUnit: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveDevice(context.Background(), dev.ID))

	err = svc.RemoveDevice(context.Background(), dev.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteRackRemovesDevices(t *testing.T) {
	svc := newTestService(t)

	rack, err := svc.CreateRack(context.Background(), uuid.New(), CreateRackInput{
		Name:       "Closet F",
		UnitCount:  12,
		PowerPorts: 6,
	})
	require.NoError(t, err)

	dev, err := svc.AddDevice(context.Background(), rack.ID, AddDeviceInput{
		Label:     "srv-1",
		Type:      "server",
		StartUnit: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRack(context.Background(), rack.ID))

	err = svc.RemoveDevice(context.Background(), dev.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
