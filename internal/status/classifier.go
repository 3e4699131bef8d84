// Package status decodes a device's raw sensor-health bitmask into a
// severity verdict using the per-platform flag catalog. All functions
// here are pure: no I/O, no catalog mutation, deterministic output.
package status

import (
	"errors"

	"stationwatch/internal/models"
)

// ErrUnknownPlatform is returned when a platform identifier has no
// catalog entry. This is a configuration error and fails loudly
// instead of silently classifying against an empty table.
var ErrUnknownPlatform = errors.New("unknown platform")

// Aggregate verdicts, in precedence order.
const (
	VerdictFailure = "failure"
	VerdictWarning = "warning"
	VerdictSuccess = "success"
	VerdictUnknown = "unknown"
)

// Result is the classification outcome for one device. Failures is
// populated only when Verdict is VerdictFailure.
type Result struct {
	Verdict  string
	Failures []models.SensorFailure
}

// Classify decodes raw against the platform's sensor definitions.
//
// Every set flag counts toward its severity class; every unset flag
// counts as a pass (absence of failure is itself the healthy baseline,
// including for indicator groups). Precedence is fixed: any error flag
// wins over warnings, warnings over success. VerdictUnknown is only
// reachable for a platform with zero flags, which catalog validation
// rules out at startup.
func Classify(raw uint32, platform string) (Result, error) {
	defs, err := Definitions(platform)
	if err != nil {
		return Result{}, err
	}

	var failure, warning, success int
	for _, def := range defs {
		for _, f := range def.Flags {
			if raw&f.Bit == 0 {
				success++
				continue
			}
			switch f.Severity {
			case SeverityError:
				failure++
			case SeverityWarning:
				warning++
			default:
				success++
			}
		}
	}

	switch {
	case failure > 0:
		return Result{Verdict: VerdictFailure, Failures: collectFailures(raw, defs)}, nil
	case warning > 0:
		return Result{Verdict: VerdictWarning}, nil
	case success > 0:
		return Result{Verdict: VerdictSuccess}, nil
	default:
		return Result{Verdict: VerdictUnknown}, nil
	}
}

// collectFailures enumerates every set error-class flag, in catalog
// order. Warning and indicator flags never appear here even when set.
func collectFailures(raw uint32, defs []SensorDefinition) []models.SensorFailure {
	var out []models.SensorFailure
	for _, def := range defs {
		for _, f := range def.Flags {
			if f.Severity != SeverityError || raw&f.Bit == 0 {
				continue
			}
			reason := f.FailedText
			if reason == "" {
				reason = def.Key
			}
			out = append(out, models.SensorFailure{Sensor: def.Key, Reason: reason})
		}
	}
	return out
}

// Power booster indicator labels, highest precedence first.
const (
	BoosterExternalPower = "External Power"
	BoosterEnabled       = "Enabled"
	BoosterDetected      = "Detected"
	BoosterNotDetected   = "Not Detected"
)

// PowerBoosterState resolves the active booster indicator labels to
// the single highest-priority state. With no active label the group's
// passed text applies.
func PowerBoosterState(activeLabels []string) string {
	active := make(map[string]bool, len(activeLabels))
	for _, l := range activeLabels {
		active[l] = true
	}
	switch {
	case active[BoosterExternalPower]:
		return BoosterExternalPower
	case active[BoosterEnabled]:
		return BoosterEnabled
	case active[BoosterDetected]:
		return BoosterDetected
	default:
		return BoosterNotDetected
	}
}

// batteryFirmwareCutover is the firmware revision where the power-mode
// flag encoding changed. The two rule sets are disjoint and the split
// is not derivable from the flags alone; it must stay version-gated.
const batteryFirmwareCutover = 174

// BatteryMode resolves the human battery-mode label from the three
// low-power mode bits, selecting the rule set by firmware revision.
func BatteryMode(batteryStatus uint32, firmwareVersion int) string {
	mode1 := batteryStatus&FlagLowPowerMode1 != 0
	mode2 := batteryStatus&FlagLowPowerMode2 != 0
	mode3 := batteryStatus&FlagLowPowerMode3 != 0

	if firmwareVersion >= batteryFirmwareCutover {
		switch {
		case mode2 && mode3:
			return "Low Power Mode 5 (M2 + M3)"
		case mode1 && mode3:
			return "Normal Mode (M1 + M3)"
		case (mode2 || mode3) && !mode1:
			return "Low Power Mode 3 (M3)"
		default:
			return "Performance Mode (M0)"
		}
	}

	switch {
	case mode1:
		return "Low Power Mode 1 (M1)"
	case mode2:
		return "Low Power Mode 2 (M2)"
	case mode3:
		return "Low Power Mode 3 (M3)"
	default:
		return "Normal (M0)"
	}
}
