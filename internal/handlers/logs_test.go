package handlers

import (
	"net/http"
	"testing"
	"time"

	"stationwatch/internal/models"
	"stationwatch/internal/service"
)

func logService(ev *mockEventLog) *service.Service {
	return &service.Service{
		EventLog:      ev,
		Availability:  &mockAvailability{},
		Fleet:         &mockFleet{},
		Authorization: &mockAuth{parseID: 1},
	}
}

func TestGetLogs_PassesNormalizedFilter(t *testing.T) {
	ev := &mockEventLog{resp: []models.MonitorEvent{{EventID: "ev-1", Type: "STATION_OFFLINE"}}}

	w := doAuthedRequest(t, logService(ev), http.MethodGet,
		"/api/v1/logs/?from=2026-08-01&to=2026-08-02&type=station_offline")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ev.lastType != "STATION_OFFLINE" {
		t.Fatalf("type filter = %q, want uppercased", ev.lastType)
	}
	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !ev.lastFrom.Equal(wantFrom) {
		t.Fatalf("from = %v, want %v", ev.lastFrom, wantFrom)
	}
	// Date-only "to" becomes end-of-day inclusive.
	if !ev.lastTo.After(time.Date(2026, 8, 2, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("to = %v, want end of day", ev.lastTo)
	}
}

func TestGetLogs_RejectsBadTimes(t *testing.T) {
	ev := &mockEventLog{}

	w := doAuthedRequest(t, logService(ev), http.MethodGet, "/api/v1/logs/?from=yesterday")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetLogs_RejectsInvertedRange(t *testing.T) {
	ev := &mockEventLog{}

	w := doAuthedRequest(t, logService(ev), http.MethodGet,
		"/api/v1/logs/?from=2026-08-02&to=2026-08-01")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
