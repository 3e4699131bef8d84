package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"stationwatch/internal/models"
	"stationwatch/internal/service"
)

// ---- Service mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastParseToken string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockAvailability struct {
	summary   models.CycleSummary
	runErr    error
	hasLast   bool
	runCalled int
}

func (m *mockAvailability) RunCycle(ctx context.Context) (models.CycleSummary, error) {
	m.runCalled++
	return m.summary, m.runErr
}
func (m *mockAvailability) LastSummary() (models.CycleSummary, bool) {
	return m.summary, m.hasLast
}

type mockFleet struct {
	reports []models.DeviceReport
	err     error
	lastAcc string
}

func (m *mockFleet) Report(ctx context.Context, accountName string) ([]models.DeviceReport, error) {
	m.lastAcc = accountName
	return m.reports, m.err
}

type mockEventLog struct {
	resp     []models.MonitorEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.MonitorEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared test helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
