package service

import (
	"context"
	"testing"
	"time"

	"stationwatch/internal/models"
)

func TestEventLogList_NormalizesFilter(t *testing.T) {
	repo := &capturingEventRepo{}
	svc := NewEventLogService(repo)

	loc := time.FixedZone("UTC+5", 5*3600)
	from := time.Date(2026, 8, 1, 12, 0, 0, 0, loc)
	to := time.Date(2026, 8, 2, 12, 0, 0, 0, loc)

	if _, err := svc.List(context.Background(), LogFilter{From: from, To: to, Type: " station_offline "}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if repo.gotFrom.Location() != time.UTC || repo.gotTo.Location() != time.UTC {
		t.Fatalf("times not normalized to UTC: %v, %v", repo.gotFrom, repo.gotTo)
	}
	if repo.gotType != "STATION_OFFLINE" {
		t.Fatalf("type = %q, want STATION_OFFLINE", repo.gotType)
	}
}

func TestEventLogList_RejectsInvertedRange(t *testing.T) {
	svc := NewEventLogService(&capturingEventRepo{})

	from := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.List(context.Background(), LogFilter{From: from, To: to}); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

type capturingEventRepo struct {
	gotFrom time.Time
	gotTo   time.Time
	gotType string
}

func (f *capturingEventRepo) Append(ctx context.Context, e models.MonitorEvent) error { return nil }

func (f *capturingEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.MonitorEvent, error) {
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return nil, nil
}
