package status

import "testing"

func mustClassify(t *testing.T, raw uint32, platform string) Result {
	t.Helper()
	res, err := Classify(raw, platform)
	if err != nil {
		t.Fatalf("Classify(%#x, %s) error = %v", raw, platform, err)
	}
	return res
}

func TestClassify_UnknownPlatform(t *testing.T) {
	if _, err := Classify(0, "XX"); err == nil {
		t.Fatalf("expected error for unknown platform")
	}
}

func TestClassify_AllClearIsSuccess(t *testing.T) {
	for _, platform := range Platforms() {
		res := mustClassify(t, FlagSensorsOK, platform)
		if res.Verdict != VerdictSuccess {
			t.Fatalf("platform %s: verdict = %s, want success", platform, res.Verdict)
		}
		if len(res.Failures) != 0 {
			t.Fatalf("platform %s: unexpected failures %v", platform, res.Failures)
		}
	}
}

func TestClassify_WarningOnlyNeverFails(t *testing.T) {
	// Disturber and noise are warning-class; neither may produce a
	// failure verdict on any platform that defines them.
	raw := FlagAirLightningDisturber | FlagAirLightningNoise
	for _, platform := range []string{PlatformAir, PlatformTempest} {
		res := mustClassify(t, raw, platform)
		if res.Verdict != VerdictWarning {
			t.Fatalf("platform %s: verdict = %s, want warning", platform, res.Verdict)
		}
		if len(res.Failures) != 0 {
			t.Fatalf("platform %s: warning verdict must carry no failures, got %v", platform, res.Failures)
		}
	}
}

func TestClassify_ErrorTakesPrecedenceOverWarning(t *testing.T) {
	// Lightning failed (error) plus noise (warning): verdict is
	// failure, and the failure list holds exactly the one error flag.
	raw := FlagAirLightningFailed | FlagAirLightningNoise
	res := mustClassify(t, raw, PlatformAir)
	if res.Verdict != VerdictFailure {
		t.Fatalf("verdict = %s, want failure", res.Verdict)
	}
	if len(res.Failures) != 1 {
		t.Fatalf("failures = %v, want exactly one entry", res.Failures)
	}
	if res.Failures[0].Sensor != "lightning" || res.Failures[0].Reason != "lightning" {
		t.Fatalf("failure = %+v, want sensor/reason lightning", res.Failures[0])
	}
}

func TestClassify_FailureListMatchesSetErrorFlags(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		raw      uint32
		sensors  []string
	}{
		{"single temp failure", PlatformAir, FlagAirTemperatureFailed, []string{"air_temperature"}},
		{"sky wind and precip", PlatformSky, FlagSkyWindFailed | FlagSkyPrecipFailed, []string{"wind", "precip"}},
		{
			"tempest triple",
			PlatformTempest,
			FlagAirRHFailed | FlagAirPressureFailed | FlagSkyLightUVFailed,
			[]string{"rh", "pressure", "light_uv"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := mustClassify(t, tc.raw, tc.platform)
			if res.Verdict != VerdictFailure {
				t.Fatalf("verdict = %s, want failure", res.Verdict)
			}
			if len(res.Failures) != len(tc.sensors) {
				t.Fatalf("got %d failures, want %d: %v", len(res.Failures), len(tc.sensors), res.Failures)
			}
			for i, key := range tc.sensors {
				if res.Failures[i].Sensor != key {
					t.Fatalf("failure[%d].Sensor = %s, want %s", i, res.Failures[i].Sensor, key)
				}
			}
		})
	}
}

func TestClassify_PrecipBitIsStable(t *testing.T) {
	// The precip error bit is 0x80 on both platforms that carry it.
	for _, platform := range []string{PlatformSky, PlatformTempest} {
		res := mustClassify(t, 0x00000080, platform)
		if res.Verdict != VerdictFailure {
			t.Fatalf("platform %s: verdict = %s, want failure", platform, res.Verdict)
		}
		if len(res.Failures) != 1 || res.Failures[0].Sensor != "precip" {
			t.Fatalf("platform %s: failures = %v, want single precip entry", platform, res.Failures)
		}
	}
}

func TestClassify_IndicatorBitsStaySuccess(t *testing.T) {
	// Booster and power-mode bits are informational: even all set, the
	// tempest verdict stays success.
	raw := FlagBoosterDetected | FlagBoosterEnabled | FlagBoosterShorePower |
		FlagLowPowerMode1 | FlagLowPowerMode2 | FlagLowPowerMode3
	res := mustClassify(t, raw, PlatformTempest)
	if res.Verdict != VerdictSuccess {
		t.Fatalf("verdict = %s, want success", res.Verdict)
	}
}

func TestPowerBoosterState_Precedence(t *testing.T) {
	tests := []struct {
		active []string
		want   string
	}{
		{[]string{BoosterExternalPower, BoosterEnabled}, BoosterExternalPower},
		{[]string{BoosterEnabled, BoosterDetected}, BoosterEnabled},
		{[]string{BoosterDetected}, BoosterDetected},
		{nil, BoosterNotDetected},
	}
	for _, tc := range tests {
		if got := PowerBoosterState(tc.active); got != tc.want {
			t.Fatalf("PowerBoosterState(%v) = %q, want %q", tc.active, got, tc.want)
		}
	}
}

func TestBatteryMode_FirmwareBranchSelection(t *testing.T) {
	m2m3 := FlagLowPowerMode2 | FlagLowPowerMode3

	// New scheme: combined M2+M3 resolves to mode 5.
	if got := BatteryMode(m2m3, 180); got != "Low Power Mode 5 (M2 + M3)" {
		t.Fatalf("firmware 180: got %q", got)
	}
	// Old scheme: same bits fall through M1 then match M2 first.
	if got := BatteryMode(m2m3, 100); got != "Low Power Mode 2 (M2)" {
		t.Fatalf("firmware 100: got %q", got)
	}
}

func TestBatteryMode_NewScheme(t *testing.T) {
	tests := []struct {
		raw  uint32
		want string
	}{
		{FlagLowPowerMode1 | FlagLowPowerMode3, "Normal Mode (M1 + M3)"},
		{FlagLowPowerMode3, "Low Power Mode 3 (M3)"},
		{FlagLowPowerMode2, "Low Power Mode 3 (M3)"},
		{0, "Performance Mode (M0)"},
		{FlagLowPowerMode1, "Performance Mode (M0)"},
	}
	for _, tc := range tests {
		if got := BatteryMode(tc.raw, batteryFirmwareCutover); got != tc.want {
			t.Fatalf("BatteryMode(%#x, %d) = %q, want %q", tc.raw, batteryFirmwareCutover, got, tc.want)
		}
	}
}

func TestBatteryMode_OldScheme(t *testing.T) {
	tests := []struct {
		raw  uint32
		want string
	}{
		{FlagLowPowerMode1, "Low Power Mode 1 (M1)"},
		{FlagLowPowerMode1 | FlagLowPowerMode2, "Low Power Mode 1 (M1)"},
		{FlagLowPowerMode3, "Low Power Mode 3 (M3)"},
		{0, "Normal (M0)"},
	}
	for _, tc := range tests {
		if got := BatteryMode(tc.raw, 173); got != tc.want {
			t.Fatalf("BatteryMode(%#x, 173) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestValidateCatalog(t *testing.T) {
	if err := validateCatalog(); err != nil {
		t.Fatalf("catalog invalid: %v", err)
	}
}
