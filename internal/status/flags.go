package status

import "fmt"

// Severity classifies a single status flag. Every flag in the catalog
// declares its class explicitly; there is no implicit default branch.
type Severity int

const (
	// SeverityError marks a failed physical sensor.
	SeverityError Severity = iota
	// SeverityWarning marks a degraded-but-working condition.
	SeverityWarning
	// SeverityInfo marks a mode/indicator bit that signals no failure.
	SeverityInfo
)

// Sensor status flag bits. The mask is 32 bits wide; unused bits are
// reserved by firmware.
const (
	FlagSensorsOK             uint32 = 0x00000000
	FlagAirLightningFailed    uint32 = 0x00000001
	FlagAirLightningNoise     uint32 = 0x00000002
	FlagAirLightningDisturber uint32 = 0x00000004
	FlagAirPressureFailed     uint32 = 0x00000008
	FlagAirTemperatureFailed  uint32 = 0x00000010
	FlagAirRHFailed           uint32 = 0x00000020
	FlagSkyWindFailed         uint32 = 0x00000040
	FlagSkyPrecipFailed       uint32 = 0x00000080
	FlagSkyLightUVFailed      uint32 = 0x00000100
	FlagLITRLightSensor       uint32 = 0x00020000
	FlagLITRSensorType        uint32 = 0x00040000

	// Indicator bits, not shown in the consumer app.
	FlagBoosterDetected   uint32 = 0x00000200
	FlagBoosterEnabled    uint32 = 0x00000400
	FlagBoosterShorePower uint32 = 0x00010000
	FlagLowPowerMode1     uint32 = 0x00000800
	FlagLowPowerMode2     uint32 = 0x00001000
	FlagLowPowerMode3     uint32 = 0x00002000
	FlagSerialEnabled     uint32 = 0x00004000
)

// Known hardware platform identifiers (serial number prefix).
const (
	PlatformAir     = "AR"
	PlatformSky     = "SK"
	PlatformTempest = "ST"
)

// HubSerialInfix marks hub-class devices. Hubs carry no sensor
// platform and are excluded from classification.
const HubSerialInfix = "HB"

// Flag binds one bit to its severity and an optional display override
// used when the bit is set.
type Flag struct {
	Bit        uint32
	Severity   Severity
	FailedText string
}

// SensorDefinition groups flags under one sensor or indicator. Key is
// empty for mode/indicator groups, which by construction carry no
// error-class flags. PassedText is shown when no flag in the group is
// set.
type SensorDefinition struct {
	Label      string
	Key        string
	PassedText string
	Flags      []Flag
}

// catalog holds the ordered sensor definitions per platform. Order
// matters for display precedence only; severity computation is
// order-independent.
var catalog = map[string][]SensorDefinition{
	PlatformAir: {
		{Label: "Temperature", Key: "air_temperature", Flags: []Flag{
			{Bit: FlagAirTemperatureFailed, Severity: SeverityError},
		}},
		{Label: "RH", Key: "rh", Flags: []Flag{
			{Bit: FlagAirRHFailed, Severity: SeverityError},
		}},
		{Label: "Lightning", Key: "lightning", Flags: []Flag{
			{Bit: FlagAirLightningFailed, Severity: SeverityError},
			{Bit: FlagAirLightningDisturber, Severity: SeverityWarning, FailedText: "Disturber"},
			{Bit: FlagAirLightningNoise, Severity: SeverityWarning, FailedText: "Noise"},
		}},
	},
	PlatformSky: {
		{Label: "Wind", Key: "wind", Flags: []Flag{
			{Bit: FlagSkyWindFailed, Severity: SeverityError},
		}},
		{Label: "Precip", Key: "precip", Flags: []Flag{
			{Bit: FlagSkyPrecipFailed, Severity: SeverityError},
		}},
		{Label: "Light / UV", Key: "light_uv", Flags: []Flag{
			{Bit: FlagSkyLightUVFailed, Severity: SeverityError},
		}},
	},
	PlatformTempest: {
		{Label: "Temperature", Key: "air_temperature", Flags: []Flag{
			{Bit: FlagAirTemperatureFailed, Severity: SeverityError},
		}},
		{Label: "RH", Key: "rh", Flags: []Flag{
			{Bit: FlagAirRHFailed, Severity: SeverityError},
		}},
		{Label: "Lightning", Key: "lightning", Flags: []Flag{
			{Bit: FlagAirLightningFailed, Severity: SeverityError},
			{Bit: FlagAirLightningDisturber, Severity: SeverityWarning, FailedText: "Disturber"},
			{Bit: FlagAirLightningNoise, Severity: SeverityWarning, FailedText: "Noise"},
		}},
		{Label: "Air Pressure", Key: "pressure", Flags: []Flag{
			{Bit: FlagAirPressureFailed, Severity: SeverityError},
		}},
		{Label: "Precip", Key: "precip", Flags: []Flag{
			{Bit: FlagSkyPrecipFailed, Severity: SeverityError},
		}},
		{Label: "Light / UV", Key: "light_uv", Flags: []Flag{
			{Bit: FlagSkyLightUVFailed, Severity: SeverityError},
		}},
		{Label: "Light Sensor Type", PassedText: "APDS9200", Flags: []Flag{
			{Bit: FlagLITRLightSensor, Severity: SeverityInfo, FailedText: "LTR"},
			{Bit: FlagLITRSensorType, Severity: SeverityInfo, FailedText: "Si1133"},
		}},
		{Label: "Power Mode", Flags: []Flag{
			{Bit: FlagLowPowerMode1, Severity: SeverityInfo},
			{Bit: FlagLowPowerMode2, Severity: SeverityInfo},
			{Bit: FlagLowPowerMode3, Severity: SeverityInfo},
		}},
		{Label: "Power Booster", PassedText: "Not Detected", Flags: []Flag{
			{Bit: FlagBoosterDetected, Severity: SeverityInfo, FailedText: "Detected"},
			{Bit: FlagBoosterEnabled, Severity: SeverityInfo, FailedText: "Enabled"},
			{Bit: FlagBoosterShorePower, Severity: SeverityInfo, FailedText: "External Power"},
		}},
	},
}

func init() {
	if err := validateCatalog(); err != nil {
		panic(err)
	}
}

// validateCatalog enforces the catalog invariants at process start:
// every platform has at least one flag, and error-class flags only
// appear in keyed definitions (the failure list is keyed by sensor).
func validateCatalog() error {
	for platform, defs := range catalog {
		flags := 0
		for _, def := range defs {
			flags += len(def.Flags)
			for _, f := range def.Flags {
				if f.Severity == SeverityError && def.Key == "" {
					return fmt.Errorf("status catalog: platform %s definition %q has an error flag but no key", platform, def.Label)
				}
			}
		}
		if flags == 0 {
			return fmt.Errorf("status catalog: platform %s defines no flags", platform)
		}
	}
	return nil
}

// Definitions returns the ordered sensor definitions for a platform.
func Definitions(platform string) ([]SensorDefinition, error) {
	defs, ok := catalog[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
	return defs, nil
}

// Platforms lists the known platform identifiers.
func Platforms() []string {
	return []string{PlatformAir, PlatformSky, PlatformTempest}
}
