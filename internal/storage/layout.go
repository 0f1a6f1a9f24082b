package storage

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/rss-it/visitreport-backend/pkg/db/models"
)

// ValidateLayout checks every placement rule for the rack and returns all
// violations at once, so a technician fixing a closet sees the full list
// instead of one error per round trip.
func ValidateLayout(rack models.Rack, devices []models.RackDevice) error {
	var err error
	for _, device := range devices {
		err = multierr.Append(err, checkFit(rack, device))
	}
	err = multierr.Append(err, checkOverlaps(devices))
	err = multierr.Append(err, checkPower(rack, devices))
	return err
}

// ValidatePlacement checks a candidate device against the rack and its
// current devices before it is persisted.
func ValidatePlacement(rack models.Rack, existing []models.RackDevice, candidate models.RackDevice) error {
	err := checkFit(rack, candidate)
	for _, device := range existing {
		if spansOverlap(device, candidate) {
			err = multierr.Append(err, fmt.Errorf(
				"device %q overlaps %q (units %d-%d)",
				candidate.Label, device.Label, device.StartUnit, endUnit(device)))
		}
	}
	used := candidate.PortsUsed
	for _, device := range existing {
		used += device.PortsUsed
	}
	if used > rack.PowerPorts {
		err = multierr.Append(err, fmt.Errorf(
			"power ports exceeded: %d used of %d available", used, rack.PowerPorts))
	}
	return err
}

func checkFit(rack models.Rack, device models.RackDevice) error {
	var err error
	if device.UnitSpan < 1 {
		err = multierr.Append(err, fmt.Errorf("device %q must span at least one unit", device.Label))
	}
	if device.StartUnit < 1 {
		err = multierr.Append(err, fmt.Errorf("device %q starts below unit 1", device.Label))
	}
	if device.StartUnit >= 1 && device.UnitSpan >= 1 && endUnit(device) > rack.UnitCount {
		err = multierr.Append(err, fmt.Errorf(
			"device %q extends past unit %d (units %d-%d)",
			device.Label, rack.UnitCount, device.StartUnit, endUnit(device)))
	}
	if device.PortsUsed < 0 {
		err = multierr.Append(err, fmt.Errorf("device %q has negative port usage", device.Label))
	}
	return err
}

func checkOverlaps(devices []models.RackDevice) error {
	sorted := make([]models.RackDevice, len(devices))
	copy(sorted, devices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartUnit < sorted[j].StartUnit
	})

	var err error
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if spansOverlap(prev, cur) {
			err = multierr.Append(err, fmt.Errorf(
				"device %q overlaps %q (units %d-%d)",
				cur.Label, prev.Label, prev.StartUnit, endUnit(prev)))
		}
	}
	return err
}

func checkPower(rack models.Rack, devices []models.RackDevice) error {
	used := 0
	for _, device := range devices {
		used += device.PortsUsed
	}
	if used > rack.PowerPorts {
		return fmt.Errorf("power ports exceeded: %d used of %d available", used, rack.PowerPorts)
	}
	return nil
}

func spansOverlap(a, b models.RackDevice) bool {
	return a.StartUnit <= endUnit(b) && b.StartUnit <= endUnit(a)
}

func endUnit(device models.RackDevice) int {
	return device.StartUnit + device.UnitSpan - 1
}

// BuildLayout maps the rack into a per-unit occupancy view. Units are listed
// top-down the way racks are labeled on site.
func BuildLayout(rack models.Rack, devices []models.RackDevice) LayoutDTO {
	occupancy := make([]LayoutUnit, rack.UnitCount)
	for i := range occupancy {
		occupancy[i] = LayoutUnit{Unit: rack.UnitCount - i}
	}

	byUnit := make(map[int]*models.RackDevice, len(devices))
	portsUsed := 0
	for i := range devices {
		device := &devices[i]
		portsUsed += device.PortsUsed
		for unit := device.StartUnit; unit <= endUnit(*device); unit++ {
			if unit >= 1 && unit <= rack.UnitCount {
				byUnit[unit] = device
			}
		}
	}

	for i := range occupancy {
		if device, ok := byUnit[occupancy[i].Unit]; ok {
			occupancy[i].DeviceID = &device.ID
			occupancy[i].Label = device.Label
			occupancy[i].Type = device.Type.String()
		}
	}

	freePorts := rack.PowerPorts - portsUsed
	if freePorts < 0 {
		freePorts = 0
	}

	return LayoutDTO{
		RackID:     rack.ID,
		Name:       rack.Name,
		UnitCount:  rack.UnitCount,
		PowerPorts: rack.PowerPorts,
		PortsUsed:  portsUsed,
		FreePorts:  freePorts,
		Units:      occupancy,
	}
}
