package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goldbench/repairshop/apps/api/pkg/model"
	"github.com/goldbench/repairshop/apps/api/pkg/util"
)

const defaultDesignListLimit = 20

func (r *Router) createDesignRequest(c *gin.Context) {
	var req model.DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req.ClientName = util.CleanText(req.ClientName)
	req.ClientEmail = util.CleanEmail(req.ClientEmail)
	req.Title = util.CleanText(req.Title)
	req.ID = ""
	created, err := r.designs.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (r *Router) listDesignRequests(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultDesignListLimit)))
	if err != nil || limit <= 0 {
		limit = defaultDesignListLimit
	}
	items, err := r.designs.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []model.DesignRequest{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (r *Router) getDesignRequest(c *gin.Context) {
	req, err := r.designs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

type designStatusReq struct {
	Status model.DesignStatus `json:"status" binding:"required"`
}

func (r *Router) updateDesignRequestStatus(c *gin.Context) {
	var req designStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		badRequest(c, "unknown design request status")
		return
	}
	updated, err := r.designs.Transition(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
