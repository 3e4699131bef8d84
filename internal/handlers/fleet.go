package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stationwatch/internal/service"
)

// @Summary      Classified device report for one account
// @Description  Fetches the account's device inventory and decodes each sensor-health bitmask.
// @Tags         fleet
// @Produce      json
// @Param        account  path  string  true  "Account name"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/fleet/{account}/devices [get]
// @Security     BearerAuth
func (h *Handler) getFleetReport(c *gin.Context) {
	ctx := c.Request.Context()
	account := c.Param("account")

	reports, err := h.services.Fleet.Report(ctx, account)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAccount) {
			c.JSON(http.StatusNotFound, gin.H{"error": errBadAccount})
			return
		}
		h.logAndJSONError(c, http.StatusBadGateway, errGetReport, "fleet_report_failed", err, "account", account)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account, "devices": reports})
}
