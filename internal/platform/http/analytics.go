package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldbench/repairshop/apps/api/internal/business/analytics"
	"github.com/goldbench/repairshop/apps/api/internal/business/status"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

func (r *Router) getStats(c *gin.Context) {
	stats, err := r.stats.GetDashboardStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (r *Router) refreshStats(c *gin.Context) {
	stats, err := r.refresher.Refresh(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type previewReq struct {
	Repairs json.RawMessage `json:"repairs"`
}

// previewAnalytics builds a dashboard over posted records without saving it.
// A missing or non-array repairs field yields an empty dashboard.
func (r *Router) previewAnalytics(c *gin.Context) {
	var req previewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	repairs := model.DecodeRepairs(req.Repairs)
	c.JSON(http.StatusOK, analytics.BuildDashboard(repairs, nil, r.now()))
}

func (r *Router) listStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"statuses":   status.All(),
		"categories": status.Categories(),
	})
}
