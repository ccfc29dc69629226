package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldbench/repairshop/apps/api/internal/business/payments"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
	"github.com/goldbench/repairshop/apps/api/pkg/util"
)

type createInvoiceReq struct {
	TicketID    string  `json:"ticketId"`
	RepairID    string  `json:"repairId"`
	ClientName  string  `json:"clientName" binding:"required"`
	ClientEmail string  `json:"clientEmail" binding:"omitempty,email"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"gt=0"`
}

func (r *Router) createInvoice(c *gin.Context) {
	var req createInvoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	inv, err := r.invoices.Create(c.Request.Context(), model.Invoice{
		TicketID:    req.TicketID,
		RepairID:    req.RepairID,
		ClientName:  util.CleanText(req.ClientName),
		ClientEmail: util.CleanEmail(req.ClientEmail),
		Description: util.CleanText(req.Description),
		Amount:      model.Amount(req.Amount),
		CreatedAt:   model.NewDateString(r.now()),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (r *Router) getInvoice(c *gin.Context) {
	inv, err := r.invoices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

type paymentReq struct {
	Amount    float64 `json:"amount" binding:"gt=0"`
	Method    string  `json:"method"`
	Reference string  `json:"reference"`
}

func (r *Router) addPayment(c *gin.Context) {
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	inv, err := r.invoices.AddPayment(c.Request.Context(), c.Param("id"), model.Payment{
		Amount:    model.Amount(req.Amount),
		Method:    req.Method,
		Reference: req.Reference,
		PaidAt:    r.now().UTC(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"invoice":  inv,
		"progress": payments.Progress(inv),
	})
}

func (r *Router) invoiceProgress(c *gin.Context) {
	inv, err := r.invoices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments.Progress(inv))
}
