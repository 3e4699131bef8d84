package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stationwatch/internal/models"
	"stationwatch/internal/service"
)

func authedService(av *mockAvailability, fl *mockFleet) *service.Service {
	return &service.Service{
		Availability:  av,
		Fleet:         fl,
		Authorization: &mockAuth{parseID: 1},
	}
}

func doAuthedRequest(t *testing.T, s *service.Service, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := newTestRouter(s)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)
	return w
}

func TestRunCycleHandler_OK(t *testing.T) {
	av := &mockAvailability{summary: models.CycleSummary{
		RanAt: time.Now().UTC(),
		Accounts: []models.AccountSummary{
			{Account: "ACME", OfflineCount: 1},
		},
	}}

	w := doAuthedRequest(t, authedService(av, &mockFleet{}), http.MethodPost, "/api/v1/availability/run")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if av.runCalled != 1 {
		t.Fatalf("RunCycle called %d times, want 1", av.runCalled)
	}
	var out struct {
		Status  string              `json:"status"`
		Summary models.CycleSummary `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if out.Status != "ok" || len(out.Summary.Accounts) != 1 {
		t.Fatalf("response = %+v", out)
	}
}

func TestRunCycleHandler_AllSourcesFailedIsBadGateway(t *testing.T) {
	av := &mockAvailability{runErr: service.ErrAllSourcesFailed}

	w := doAuthedRequest(t, authedService(av, &mockFleet{}), http.MethodPost, "/api/v1/availability/run")

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502 (body=%s)", w.Code, w.Body.String())
	}
}

func TestGetSummaryHandler_NotFoundBeforeFirstCycle(t *testing.T) {
	av := &mockAvailability{hasLast: false}

	w := doAuthedRequest(t, authedService(av, &mockFleet{}), http.MethodGet, "/api/v1/availability/summary")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetSummaryHandler_ReturnsLatest(t *testing.T) {
	av := &mockAvailability{
		hasLast: true,
		summary: models.CycleSummary{Accounts: []models.AccountSummary{{Account: "ACME"}}},
	}

	w := doAuthedRequest(t, authedService(av, &mockFleet{}), http.MethodGet, "/api/v1/availability/summary")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var out models.CycleSummary
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(out.Accounts) != 1 || out.Accounts[0].Account != "ACME" {
		t.Fatalf("summary = %+v", out)
	}
}

func TestFleetHandler_UnknownAccountIs404(t *testing.T) {
	fl := &mockFleet{err: service.ErrUnknownAccount}

	w := doAuthedRequest(t, authedService(&mockAvailability{}, fl), http.MethodGet, "/api/v1/fleet/NOBODY/devices")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if fl.lastAcc != "NOBODY" {
		t.Fatalf("account param = %q", fl.lastAcc)
	}
}

func TestFleetHandler_ReturnsReports(t *testing.T) {
	fl := &mockFleet{reports: []models.DeviceReport{
		{DeviceID: 1, Serial: "AR-00001234", Platform: "AR", Verdict: "failure",
			Failures: []models.SensorFailure{{Sensor: "rh", Reason: "rh"}}},
	}}

	w := doAuthedRequest(t, authedService(&mockAvailability{}, fl), http.MethodGet, "/api/v1/fleet/ACME/devices")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var out struct {
		Account string                `json:"account"`
		Devices []models.DeviceReport `json:"devices"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if out.Account != "ACME" || len(out.Devices) != 1 || out.Devices[0].Verdict != "failure" {
		t.Fatalf("response = %+v", out)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	s := authedService(&mockAvailability{}, &mockFleet{})
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/summary", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without Authorization header", w.Code)
	}
}
