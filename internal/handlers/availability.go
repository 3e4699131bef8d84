package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stationwatch/internal/service"
)

const (
	errRunCycle   = "availability cycle failed"
	errNoSummary  = "no cycle has completed yet"
	errGetReport  = "failed to build fleet report"
	errGetLogs    = "failed to list events"
	errBadAccount = "unknown account"
)

// @Summary      Run an availability cycle now
// @Description  Fetches every account's roster, computes transitions and dispatches alerts.
// @Tags         availability
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/availability/run [post]
// @Security     BearerAuth
func (h *Handler) runCycle(c *gin.Context) {
	ctx := c.Request.Context()
	summary, err := h.services.Availability.RunCycle(ctx)
	if err != nil {
		if errors.Is(err, service.ErrAllSourcesFailed) {
			h.logAndJSONError(c, http.StatusBadGateway, errRunCycle, "availability_cycle_failed", err)
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRunCycle, "availability_cycle_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "summary": summary})
}

// @Summary      Latest cycle summary
// @Tags         availability
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/availability/summary [get]
// @Security     BearerAuth
func (h *Handler) getSummary(c *gin.Context) {
	summary, ok := h.services.Availability.LastSummary()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errNoSummary})
		return
	}
	c.JSON(http.StatusOK, summary)
}
