package models

// Device is one device record from the inventory source. SensorStatus
// is the raw 32-bit health bitmask; it stays opaque outside the
// classifier.
type Device struct {
	DeviceID        int    `json:"device_id"`
	Serial          string `json:"serial_number"`
	SensorStatus    uint32 `json:"sensor_status"`
	FirmwareVersion int    `json:"firmware_revision,omitempty"`
}

// SensorFailure names one failing sensor on a device.
type SensorFailure struct {
	Sensor string `json:"sensor"`
	Reason string `json:"reason"`
}

// DeviceReport is the classified view of a single device.
type DeviceReport struct {
	DeviceID int             `json:"device_id"`
	Serial   string          `json:"serial"`
	Platform string          `json:"platform"`
	Verdict  string          `json:"verdict"`
	Failures []SensorFailure `json:"failures,omitempty"`
	Error    string          `json:"error,omitempty"`
}
