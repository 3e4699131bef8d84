package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stationwatch/internal/logger"
	"stationwatch/internal/models"
	"stationwatch/internal/status"
)

// ErrUnknownAccount is returned for a report request naming an account
// that is not configured.
var ErrUnknownAccount = errors.New("unknown account")

// FleetService classifies the sensor health of an account's devices.
type FleetService struct {
	accounts []models.Account
	devices  DeviceSource
	log      *logger.Logger
}

func NewFleetService(accounts []models.Account, devices DeviceSource, log *logger.Logger) *FleetService {
	return &FleetService{accounts: accounts, devices: devices, log: log}
}

// Report fetches the account's device inventory and classifies every
// sensor platform. Hub-class devices carry no sensors and are excluded
// up front. One device with an unrecognized serial prefix is reported
// as unknown with its error; it does not hide the rest of the fleet.
func (s *FleetService) Report(ctx context.Context, accountName string) ([]models.DeviceReport, error) {
	acct, ok := s.findAccount(accountName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAccount, accountName)
	}

	devices, err := s.devices.FetchDevices(ctx, acct.APIKey)
	if err != nil {
		return nil, fmt.Errorf("device fetch for %s: %w", acct.Name, err)
	}

	reports := make([]models.DeviceReport, 0, len(devices))
	for _, d := range devices {
		if strings.Contains(d.Serial, status.HubSerialInfix) {
			continue
		}
		reports = append(reports, s.classifyDevice(d))
	}
	return reports, nil
}

func (s *FleetService) classifyDevice(d models.Device) models.DeviceReport {
	platform, _, _ := strings.Cut(d.Serial, "-")
	report := models.DeviceReport{
		DeviceID: d.DeviceID,
		Serial:   d.Serial,
		Platform: platform,
	}

	res, err := status.Classify(d.SensorStatus, platform)
	if err != nil {
		s.log.Errorw("device classification failed", "serial", d.Serial, "err", err)
		report.Verdict = status.VerdictUnknown
		report.Error = err.Error()
		return report
	}

	report.Verdict = res.Verdict
	report.Failures = res.Failures
	return report
}

func (s *FleetService) findAccount(name string) (models.Account, bool) {
	for _, a := range s.accounts {
		if a.Name == name {
			return a, true
		}
	}
	return models.Account{}, false
}
