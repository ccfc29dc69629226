package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goldbench/repairshop/apps/api/internal/business/analytics"
	"github.com/goldbench/repairshop/apps/api/internal/business/status"
	"github.com/goldbench/repairshop/apps/api/internal/repository"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
	"github.com/goldbench/repairshop/apps/api/pkg/util"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// repairView is a repair with its derived status metadata.
type repairView struct {
	model.Repair
	StatusInfo status.Descriptor `json:"statusInfo"`
}

func viewOf(m model.Repair) repairView {
	return repairView{Repair: m, StatusInfo: status.Classify(m.Status)}
}

func (r *Router) listRepairs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	var completed *bool
	if v := c.Query("completed"); v != "" {
		b := v == "true"
		completed = &b
	}

	all, err := r.repairs.List(c.Request.Context(), repository.RepairQuery{
		Status:     c.Query("status"),
		ClientName: c.Query("client"),
		Completed:  completed,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	sorted := analytics.MostRecent(all, -1)

	start := len(sorted)
	if pages := (len(sorted) + pageSize - 1) / pageSize; page <= pages {
		start = (page - 1) * pageSize
	}
	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	items := make([]repairView, 0, end-start)
	for _, m := range sorted[start:end] {
		items = append(items, viewOf(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"total":    len(sorted),
		"page":     page,
		"pageSize": pageSize,
	})
}

func (r *Router) getRepair(c *gin.Context) {
	m, err := r.repairs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(m))
}

func (r *Router) createRepair(c *gin.Context) {
	var m model.Repair
	if err := c.ShouldBindJSON(&m); err != nil {
		badRequest(c, "invalid body")
		return
	}
	m = util.CleanRepair(m)
	if m.ID == "" && m.RepairNumber == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = model.NewDateString(r.now())
	}
	if m.Status != "" {
		m.StatusCategory = string(status.CategoryOf(m.Status))
	}
	created, err := r.repairs.Create(c.Request.Context(), m)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(created))
}

// importRepairs accepts a JSON array of repairs. Any other JSON imports
// nothing.
func (r *Router) importRepairs(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "invalid body")
		return
	}
	decoded := model.DecodeRepairs(raw)
	for i := range decoded {
		decoded[i] = util.CleanRepair(decoded[i])
		if decoded[i].ID == "" && decoded[i].RepairNumber == "" {
			decoded[i].ID = uuid.NewString()
		}
		if decoded[i].Status != "" && decoded[i].StatusCategory == "" {
			decoded[i].StatusCategory = string(status.CategoryOf(decoded[i].Status))
		}
	}
	if err := r.repairs.BatchUpsert(c.Request.Context(), decoded); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(decoded)})
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// updateRepairStatus writes the new status string. Reaching a Completion
// status also sets the completed flag and, once, completedAt.
func (r *Router) updateRepairStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	m, err := r.repairs.Get(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	category := status.CategoryOf(req.Status)
	update := repository.StatusUpdate{
		Status:         req.Status,
		StatusCategory: string(category),
		Completed:      m.Completed,
	}
	if category == status.CategoryCompletion {
		update.Completed = true
		if m.CompletedAt.IsZero() {
			update.CompletedAt = model.NewDateString(r.now())
		}
	}
	if err := r.repairs.UpdateStatus(ctx, id, update); err != nil {
		writeError(c, err)
		return
	}

	m.Status = update.Status
	m.StatusCategory = update.StatusCategory
	m.Completed = update.Completed
	if !update.CompletedAt.IsZero() {
		m.CompletedAt = update.CompletedAt
	}
	c.JSON(http.StatusOK, viewOf(m))
}
