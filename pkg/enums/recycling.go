package enums

import "fmt"

// Material maps to the recycling_material enum in Postgres.
type Material string

const (
	MaterialComputers Material = "computers"
	MaterialMonitors  Material = "monitors"
	MaterialPrinters  Material = "printers"
	MaterialBatteries Material = "batteries"
	MaterialToner     Material = "toner"
	MaterialCables    Material = "cables"
	MaterialPhones    Material = "phones"
	MaterialMisc      Material = "misc"
)

var validMaterials = []Material{
	MaterialComputers,
	MaterialMonitors,
	MaterialPrinters,
	MaterialBatteries,
	MaterialToner,
	MaterialCables,
	MaterialPhones,
	MaterialMisc,
}

// String implements fmt.Stringer.
func (m Material) String() string {
	return string(m)
}

// IsValid reports whether the value matches the canonical recycling_material enum.
func (m Material) IsValid() bool {
	for _, candidate := range validMaterials {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaterial converts raw input into Material.
func ParseMaterial(value string) (Material, error) {
	for _, candidate := range validMaterials {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recycling material %q", value)
}
