package application

// VoltageAddress locates a voltage configuration by drive and voltage index.
type VoltageAddress struct {
	Drive   int `json:"drive"`
	Voltage int `json:"voltage"`
}

// CurveAddress locates a curve.
type CurveAddress struct {
	Drive   int `json:"drive"`
	Voltage int `json:"voltage"`
	Curve   int `json:"curve"`
}

// VoltageAddress is the voltage the curve belongs to.
func (a CurveAddress) VoltageAddress() VoltageAddress {
	return VoltageAddress{Drive: a.Drive, Voltage: a.Voltage}
}

// PointAddress locates a single data point.
type PointAddress struct {
	CurveAddress
	Index int `json:"index"`
}

// Less orders addresses drive, voltage, curve, index.
func (a PointAddress) Less(b PointAddress) bool {
	if a.Drive != b.Drive {
		return a.Drive < b.Drive
	}
	if a.Voltage != b.Voltage {
		return a.Voltage < b.Voltage
	}
	if a.Curve != b.Curve {
		return a.Curve < b.Curve
	}
	return a.Index < b.Index
}
