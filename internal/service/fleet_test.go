package service

import (
	"context"
	"errors"
	"testing"

	"stationwatch/internal/logger"
	"stationwatch/internal/models"
	"stationwatch/internal/status"
)

type fakeDevices struct {
	devices []models.Device
	err     error
}

func (f *fakeDevices) FetchDevices(ctx context.Context, apiKey string) ([]models.Device, error) {
	return f.devices, f.err
}

func newFleet(devices *fakeDevices) *FleetService {
	accounts := []models.Account{{Name: "ACME", APIKey: "key-1"}}
	return NewFleetService(accounts, devices, logger.Get(logger.ErrorLevel))
}

func TestFleetReport_ClassifiesAndExcludesHubs(t *testing.T) {
	devices := &fakeDevices{devices: []models.Device{
		{DeviceID: 1, Serial: "AR-00001234", SensorStatus: status.FlagAirTemperatureFailed},
		{DeviceID: 2, Serial: "HB-00009999", SensorStatus: 0xFFFF},
		{DeviceID: 3, Serial: "SK-00005678", SensorStatus: 0},
	}}

	reports, err := newFleet(devices).Report(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2 (hub excluded)", len(reports))
	}
	if reports[0].Platform != "AR" || reports[0].Verdict != status.VerdictFailure {
		t.Fatalf("report[0] = %+v", reports[0])
	}
	if len(reports[0].Failures) != 1 || reports[0].Failures[0].Sensor != "air_temperature" {
		t.Fatalf("report[0] failures = %v", reports[0].Failures)
	}
	if reports[1].Platform != "SK" || reports[1].Verdict != status.VerdictSuccess {
		t.Fatalf("report[1] = %+v", reports[1])
	}
}

func TestFleetReport_UnknownPlatformIsIsolated(t *testing.T) {
	devices := &fakeDevices{devices: []models.Device{
		{DeviceID: 1, Serial: "ZZ-00000001", SensorStatus: 0},
		{DeviceID: 2, Serial: "AR-00001234", SensorStatus: 0},
	}}

	reports, err := newFleet(devices).Report(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("one bad serial must not fail the report: %v", err)
	}
	if reports[0].Verdict != status.VerdictUnknown || reports[0].Error == "" {
		t.Fatalf("report[0] = %+v, want unknown verdict with error", reports[0])
	}
	if reports[1].Verdict != status.VerdictSuccess {
		t.Fatalf("report[1] = %+v", reports[1])
	}
}

func TestFleetReport_UnknownAccount(t *testing.T) {
	_, err := newFleet(&fakeDevices{}).Report(context.Background(), "NOBODY")
	if !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("err = %v, want ErrUnknownAccount", err)
	}
}

func TestFleetReport_FetchErrorPropagates(t *testing.T) {
	devices := &fakeDevices{err: errors.New("HTTP 502")}
	if _, err := newFleet(devices).Report(context.Background(), "ACME"); err == nil {
		t.Fatalf("expected fetch error")
	}
}
