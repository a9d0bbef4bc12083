package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/services"
	"github.com/rs/zerolog"
)

const dashboardPath = "/admin/dashboard"

// DashboardHandler serves the overview and the date-ranged reports.
type DashboardHandler struct {
	Dashboard *services.DashboardService
	Reports   *services.ReportService
	Log       zerolog.Logger
}

func NewDashboardHandler(d *services.DashboardService, r *services.ReportService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{Dashboard: d, Reports: r, Log: log}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.Dashboard.Summary(c.Request.Context())
	if err != nil {
		fail(c, h.Log, err, dashboardPath)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) Report(c *gin.Context) {
	var req dtos.ReportRequest
	if !bind(c, h.Log, &req, dashboardPath) {
		return
	}
	report, err := h.Reports.Build(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.Log, err, dashboardPath)
		return
	}
	c.JSON(http.StatusOK, report)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
