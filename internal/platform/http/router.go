package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goldbench/repairshop/apps/api/internal/platform/auth"
	"github.com/goldbench/repairshop/apps/api/internal/platform/logging"
	"github.com/goldbench/repairshop/apps/api/internal/repository"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

type RepairStore interface {
	List(ctx context.Context, q repository.RepairQuery) ([]model.Repair, error)
	Get(ctx context.Context, id string) (model.Repair, error)
	Create(ctx context.Context, m model.Repair) (model.Repair, error)
	BatchUpsert(ctx context.Context, repairs []model.Repair) error
	UpdateStatus(ctx context.Context, id string, u repository.StatusUpdate) error
}

type StatsReader interface {
	GetDashboardStats(ctx context.Context) (model.DashboardStats, error)
}

type StatsRefresher interface {
	Refresh(ctx context.Context) (model.DashboardStats, error)
}

type SettingsStore interface {
	GetPricing(ctx context.Context, defaults model.PricingSettings) (model.PricingSettings, error)
	Save(ctx context.Context, s model.Settings) error
}

type InvoiceStore interface {
	Create(ctx context.Context, inv model.Invoice) (model.Invoice, error)
	Get(ctx context.Context, id string) (model.Invoice, error)
	AddPayment(ctx context.Context, id string, p model.Payment) (model.Invoice, error)
}

type DesignRequestStore interface {
	Create(ctx context.Context, req model.DesignRequest) (model.DesignRequest, error)
	Get(ctx context.Context, id string) (model.DesignRequest, error)
	List(ctx context.Context, limit int) ([]model.DesignRequest, error)
	Transition(ctx context.Context, id string, next model.DesignStatus) (model.DesignRequest, error)
}

// SecurityCodes issues and consumes the codes that gate settings writes.
type SecurityCodes interface {
	Issue(subject string) (string, time.Time, error)
	Verify(subject, code string) error
}

// Deps are the collaborators the router needs.
type Deps struct {
	Repairs        RepairStore
	Stats          StatsReader
	Refresher      StatsRefresher
	Settings       SettingsStore
	Invoices       InvoiceStore
	DesignRequests DesignRequestStore
	Codes          SecurityCodes
	Tokens         auth.Verifier
	Logger         *zap.Logger
	AllowedOrigins string
}

// Router wires HTTP handlers.
type Router struct {
	repairs   RepairStore
	stats     StatsReader
	refresher StatsRefresher
	settings  SettingsStore
	invoices  InvoiceStore
	designs   DesignRequestStore
	codes     SecurityCodes
	logger    *zap.Logger
	origins   string
	now       func() time.Time
}

func NewRouter(d Deps) *gin.Engine {
	return newRouter(d).engine(d.Tokens)
}

func newRouter(d Deps) *Router {
	return &Router{
		repairs:   d.Repairs,
		stats:     d.Stats,
		refresher: d.Refresher,
		settings:  d.Settings,
		invoices:  d.Invoices,
		designs:   d.DesignRequests,
		codes:     d.Codes,
		logger:    logging.OrNop(d.Logger),
		origins:   d.AllowedOrigins,
		now:       time.Now,
	}
}

func (r *Router) engine(tokens auth.Verifier) *gin.Engine {
	router := gin.New()
	router.Use(requestIDMiddleware(), accessLogMiddleware(r.logger), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := auth.RequireRole(auth.RoleAdmin)
	staff := auth.RequireRole(auth.RoleAdmin, auth.RoleStaff)
	bench := auth.RequireRole(auth.RoleAdmin, auth.RoleStaff, auth.RoleArtisan)

	api := router.Group("/api", auth.Middleware(tokens))
	{
		api.GET("/repairs", r.listRepairs)
		api.GET("/repairs/:id", r.getRepair)
		api.POST("/repairs", staff, r.createRepair)
		api.POST("/repairs/import", admin, r.importRepairs)
		api.PATCH("/repairs/:id/status", bench, r.updateRepairStatus)

		api.GET("/stats", r.getStats)
		api.POST("/stats/refresh", admin, r.refreshStats)
		api.POST("/analytics/preview", r.previewAnalytics)
		api.GET("/statuses", r.listStatuses)

		api.GET("/settings", r.getSettings)
		api.POST("/settings/security-code", admin, r.issueSecurityCode)
		api.PUT("/settings", admin, r.updateSettings)
		api.POST("/pricing/quote", r.quote)

		api.POST("/invoices", staff, r.createInvoice)
		api.GET("/invoices/:id", r.getInvoice)
		api.POST("/invoices/:id/payments", staff, r.addPayment)
		api.GET("/invoices/:id/progress", r.invoiceProgress)

		api.POST("/design-requests", r.createDesignRequest)
		api.GET("/design-requests", r.listDesignRequests)
		api.GET("/design-requests/:id", r.getDesignRequest)
		api.PATCH("/design-requests/:id/status", staff, r.updateDesignRequestStatus)
	}

	return router
}
