package enums

import "fmt"

// DeviceType maps to the device_type enum in Postgres.
type DeviceType string

const (
	DeviceTypeServer     DeviceType = "server"
	DeviceTypeSwitch     DeviceType = "switch"
	DeviceTypeRouter     DeviceType = "router"
	DeviceTypeFirewall   DeviceType = "firewall"
	DeviceTypePatchPanel DeviceType = "patch_panel"
	DeviceTypeUPS        DeviceType = "ups"
	DeviceTypeShelf      DeviceType = "shelf"
	DeviceTypeOther      DeviceType = "other"
)

var validDeviceTypes = []DeviceType{
	DeviceTypeServer,
	DeviceTypeSwitch,
	DeviceTypeRouter,
	DeviceTypeFirewall,
	DeviceTypePatchPanel,
	DeviceTypeUPS,
	DeviceTypeShelf,
	DeviceTypeOther,
}

// String implements fmt.Stringer.
func (d DeviceType) String() string {
	return string(d)
}

// IsValid reports whether the value matches the canonical device_type enum.
func (d DeviceType) IsValid() bool {
	for _, candidate := range validDeviceTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeviceType converts raw input into DeviceType.
func ParseDeviceType(value string) (DeviceType, error) {
	for _, candidate := range validDeviceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid device type %q", value)
}
