package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goldbench/repairshop/apps/api/internal/business/pricing"
	"github.com/goldbench/repairshop/apps/api/internal/platform/auth"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

func (r *Router) livePricing(c *gin.Context) (pricing.Pricing, error) {
	s, err := r.settings.GetPricing(c.Request.Context(), pricing.Defaults().Settings())
	if err != nil {
		return pricing.Pricing{}, err
	}
	return pricing.FromSettings(s), nil
}

func (r *Router) getSettings(c *gin.Context) {
	p, err := r.livePricing(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pricing":            p.Settings(),
		"businessMultiplier": p.BusinessMultiplier(),
	})
}

// issueSecurityCode creates a code for the caller. Delivery is out of band:
// the code only appears in the server log.
func (r *Router) issueSecurityCode(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	code, expiresAt, err := r.codes.Issue(claims.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	r.logger.Info("settings security code issued",
		zap.String("subject", claims.Subject),
		zap.String("code", code),
		zap.Time("expiresAt", expiresAt),
	)
	c.JSON(http.StatusCreated, gin.H{"expiresAt": expiresAt})
}

// pricingPayload uses pointers so an omitted field is rejected instead of
// being saved as zero. Explicit zeros are allowed.
type pricingPayload struct {
	Wage              *float64 `json:"wage" binding:"required"`
	MaterialMarkup    *float64 `json:"materialMarkup" binding:"required"`
	AdministrativeFee *float64 `json:"administrativeFee" binding:"required"`
	BusinessFee       *float64 `json:"businessFee" binding:"required"`
	ConsumablesFee    *float64 `json:"consumablesFee" binding:"required"`
}

func (p pricingPayload) settings() model.PricingSettings {
	return model.PricingSettings{
		Wage:              *p.Wage,
		MaterialMarkup:    *p.MaterialMarkup,
		AdministrativeFee: *p.AdministrativeFee,
		BusinessFee:       *p.BusinessFee,
		ConsumablesFee:    *p.ConsumablesFee,
	}
}

type updateSettingsReq struct {
	Code    string         `json:"code" binding:"required"`
	Pricing pricingPayload `json:"pricing"`
}

func (r *Router) updateSettings(c *gin.Context) {
	var req updateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code and every pricing field are required")
		return
	}
	// A rejected payload must not consume the code.
	p := pricing.FromSettings(req.Pricing.settings())
	if err := p.Validate(); err != nil {
		writeError(c, err)
		return
	}
	claims, _ := auth.ClaimsFrom(c)
	if err := r.codes.Verify(claims.Subject, req.Code); err != nil {
		writeError(c, err)
		return
	}
	settings := model.Settings{
		Pricing:   p.Settings(),
		UpdatedAt: r.now().UTC(),
		UpdatedBy: claims.Subject,
	}
	if err := r.settings.Save(c.Request.Context(), settings); err != nil {
		writeError(c, err)
		return
	}
	r.logger.Info("pricing settings updated", zap.String("subject", claims.Subject))
	c.JSON(http.StatusOK, settings)
}

type quoteReq struct {
	LaborHours   model.Amount `json:"laborHours"`
	MaterialCost model.Amount `json:"materialCost"`
}

func (r *Router) quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	p, err := r.livePricing(c)
	if err != nil {
		writeError(c, err)
		return
	}
	hours := pricing.Sanitize(req.LaborHours.Float())
	material := pricing.Sanitize(req.MaterialCost.Float())
	c.JSON(http.StatusOK, pricing.Quote(hours, material, p))
}
