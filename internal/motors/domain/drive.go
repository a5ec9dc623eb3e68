package motors

import "fmt"

// Drive is a servo drive the motor is rated with.
type Drive struct {
	Name         string                  `json:"name"`
	PartNumber   string                  `json:"part_number"`
	Manufacturer string                  `json:"manufacturer"`
	Voltages     []*VoltageConfiguration `json:"voltages"`
}

// Voltage returns the voltage configuration at index i.
func (d *Drive) Voltage(i int) (*VoltageConfiguration, error) {
	if i < 0 || i >= len(d.Voltages) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrVoltageNotFound, i, len(d.Voltages))
	}
	return d.Voltages[i], nil
}

// Clone deep copies the drive.
func (d *Drive) Clone() *Drive {
	if d == nil {
		return nil
	}
	clone := *d
	clone.Voltages = make([]*VoltageConfiguration, len(d.Voltages))
	for i, v := range d.Voltages {
		clone.Voltages[i] = v.Clone()
	}
	return &clone
}
