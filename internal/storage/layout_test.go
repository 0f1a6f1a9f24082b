package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
	"github.com/rss-it/visitreport-backend/pkg/enums"
)

func testRack(unitCount, powerPorts int) models.Rack {
	return models.Rack{
		ID:         uuid.New(),
		ReportID:   uuid.New(),
		Name:       "Closet A",
		UnitCount:  unitCount,
		PowerPorts: powerPorts,
	}
}

func device(label string, start, span, ports int) models.RackDevice {
	return models.RackDevice{
		ID:        uuid.New(),
		Label:     label,
		Type:      enums.DeviceTypeServer,
		StartUnit: start,
		UnitSpan:  span,
		PortsUsed: ports,
	}
}

func TestValidateLayoutClean(t *testing.T) {
	rack := testRack(12, 8)
	devices := []models.RackDevice{
		device("core-sw", 1, 1, 1),
		device("fw-1", 2, 1, 1),
		device("srv-1", 4, 2, 2),
		device("ups", 10, 3, 0),
	}
	assert.NoError(t, ValidateLayout(rack, devices))
}

func TestValidateLayoutCollectsEveryViolation(t *testing.T) {
	rack := testRack(10, 2)
	devices := []models.RackDevice{
		device("srv-1", 0, 2, 1), // starts below unit 1
		device("srv-2", 9, 4, 1), // extends past the top
		device("srv-3", 1, 2, 1), // overlaps srv-1, pushes ports over
	}

	err := ValidateLayout(rack, devices)
	require.Error(t, err)

	violations := multierr.Errors(err)
	assert.GreaterOrEqual(t, len(violations), 4, "fit, overlap, and power violations must all surface")

	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.Error())
	}
	assert.Contains(t, messages, `device "srv-1" starts below unit 1`)
	assert.Contains(t, messages, `device "srv-2" extends past unit 10 (units 9-12)`)
	assert.Contains(t, messages, "power ports exceeded: 3 used of 2 available")
}

func TestValidatePlacementOverlap(t *testing.T) {
	rack := testRack(42, 10)
	existing := []models.RackDevice{device("srv-1", 5, 3, 2)}

	err := ValidatePlacement(rack, existing, device("srv-2", 7, 2, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `overlaps "srv-1"`)

	// adjacent placement is fine
	assert.NoError(t, ValidatePlacement(rack, existing, device("srv-3", 8, 2, 1)))
}

func TestValidatePlacementPowerBudget(t *testing.T) {
	rack := testRack(42, 4)
	existing := []models.RackDevice{device("srv-1", 1, 1, 3)}

	err := ValidatePlacement(rack, existing, device("srv-2", 10, 1, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "power ports exceeded: 5 used of 4 available")
}

func TestValidatePlacementZeroSpan(t *testing.T) {
	rack := testRack(42, 4)
	err := ValidatePlacement(rack, nil, device("srv-1", 1, 0, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must span at least one unit")
}

func TestBuildLayoutOccupancy(t *testing.T) {
	rack := testRack(6, 8)
	devices := []models.RackDevice{
		device("srv-1", 2, 2, 3),
		device("sw-1", 5, 1, 1),
	}

	layout := BuildLayout(rack, devices)
	assert.Equal(t, 6, layout.UnitCount)
	assert.Equal(t, 4, layout.PortsUsed)
	assert.Equal(t, 4, layout.FreePorts)
	require.Len(t, layout.Units, 6)

	// top-down listing: units[0] is unit 6
	assert.Equal(t, 6, layout.Units[0].Unit)
	assert.Nil(t, layout.Units[0].DeviceID)

	assert.Equal(t, 5, layout.Units[1].Unit)
	assert.Equal(t, "sw-1", layout.Units[1].Label)

	assert.Equal(t, "srv-1", layout.Units[3].Label)
	assert.Equal(t, "srv-1", layout.Units[4].Label)
	assert.Nil(t, layout.Units[5].DeviceID)
}

func TestBuildLayoutEmptyRack(t *testing.T) {
	layout := BuildLayout(testRack(4, 2), nil)
	assert.Equal(t, 0, layout.PortsUsed)
	assert.Equal(t, 2, layout.FreePorts)
	for _, unit := range layout.Units {
		assert.Nil(t, unit.DeviceID)
	}
}
