package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldbench/repairshop/apps/api/internal/business/dashboard"
	"github.com/goldbench/repairshop/apps/api/internal/business/pricing"
	"github.com/goldbench/repairshop/apps/api/internal/platform/securitycode"
	"github.com/goldbench/repairshop/apps/api/internal/repository"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

func statusFor(err error) int {
	var invalid *pricing.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, securitycode.ErrInvalidCode):
		return http.StatusForbidden
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, repository.ErrAlreadyExists),
		errors.Is(err, dashboard.ErrSuperseded):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
