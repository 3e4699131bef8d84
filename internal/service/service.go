package service

import (
	"context"
	"time"

	"stationwatch/internal/logger"
	"stationwatch/internal/models"
	"stationwatch/internal/notify"
	"stationwatch/internal/repository"
)

// RosterSource provides the per-account station roster.
type RosterSource interface {
	FetchStations(ctx context.Context, apiKey string) ([]models.Station, error)
}

// DeviceSource provides the per-account device inventory.
type DeviceSource interface {
	FetchDevices(ctx context.Context, apiKey string) ([]models.Device, error)
}

// Availability runs the offline/online transition cycle.
type Availability interface {
	RunCycle(ctx context.Context) (models.CycleSummary, error)
	LastSummary() (models.CycleSummary, bool)
}

// Fleet classifies device sensor health on demand.
type Fleet interface {
	Report(ctx context.Context, accountName string) ([]models.DeviceReport, error)
}

// EventLog exposes the append-only audit log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.MonitorEvent, error)
}

// Poller runs the background availability loop. Stop via context
// cancellation in main() for graceful shutdown.
type Poller interface {
	Run(ctx context.Context, tick time.Duration)
}

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Service aggregates all sub-services.
type Service struct {
	Availability
	Fleet
	EventLog
	Poller
	Authorization
}

// Deps carries everything the services need. Accounts are plain
// injected data; nothing here is a process-wide singleton.
type Deps struct {
	Repos      *repository.Repository
	Roster     RosterSource
	Devices    DeviceSource
	Notifier   notify.Notifier
	Accounts   []models.Account
	SigningKey string
	Log        *logger.Logger
}

// NewService wires the repository layer and collaborators into
// concrete services.
func NewService(d Deps) *Service {
	availability := NewAvailabilityService(d.Accounts, d.Roster, d.Repos.Cache, d.Repos.Events, d.Notifier, d.Log)
	return &Service{
		Availability:  availability,
		Fleet:         NewFleetService(d.Accounts, d.Devices, d.Log),
		EventLog:      NewEventLogService(d.Repos.Events),
		Poller:        NewPollerService(availability, d.Log),
		Authorization: NewAuthService(d.Repos.Auth, d.SigningKey),
	}
}
