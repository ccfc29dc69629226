package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goldbench/repairshop/apps/api/internal/business/analytics"
	"github.com/goldbench/repairshop/apps/api/internal/platform/logging"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

// ErrSuperseded is returned by a refresh whose result was discarded because a
// newer refresh already persisted its snapshot.
var ErrSuperseded = errors.New("stats refresh superseded by a newer request")

type RepairSource interface {
	FetchAll(ctx context.Context) ([]model.Repair, error)
}

type InvoiceSource interface {
	FetchAll(ctx context.Context) ([]model.Invoice, error)
}

type StatsStore interface {
	SaveDashboardStats(ctx context.Context, stats model.DashboardStats) error
}

// Refresher recomputes and persists the dashboard snapshot. Overlapping
// refreshes are ordered by ticket: only a refresh at least as new as the last
// committed one may write.
type Refresher struct {
	repairs  RepairSource
	invoices InvoiceSource
	store    StatsStore
	logger   *zap.Logger
	now      func() time.Time

	mu        sync.Mutex
	issued    uint64
	committed uint64
}

func NewRefresher(repairs RepairSource, invoices InvoiceSource, store StatsStore, logger *zap.Logger) *Refresher {
	return &Refresher{
		repairs:  repairs,
		invoices: invoices,
		store:    store,
		logger:   logging.OrNop(logger),
		now:      time.Now,
	}
}

func (r *Refresher) nextTicket() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued++
	return r.issued
}

// Refresh loads repairs and invoices concurrently, builds the snapshot and
// saves it unless a newer refresh has already committed.
func (r *Refresher) Refresh(ctx context.Context) (model.DashboardStats, error) {
	ticket := r.nextTicket()
	log := r.logger.With(zap.Uint64("ticket", ticket))

	var (
		repairs  []model.Repair
		invoices []model.Invoice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		repairs, err = r.repairs.FetchAll(gctx)
		if err != nil {
			return fmt.Errorf("load repairs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		invoices, err = r.invoices.FetchAll(gctx)
		if err != nil {
			return fmt.Errorf("load invoices: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("stats refresh failed", zap.Error(err))
		return model.DashboardStats{}, err
	}

	stats := analytics.BuildDashboard(repairs, invoices, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket < r.committed {
		log.Info("discarding stale stats refresh", zap.Uint64("committed", r.committed))
		return model.DashboardStats{}, ErrSuperseded
	}
	if err := r.store.SaveDashboardStats(ctx, stats); err != nil {
		log.Error("save stats failed", zap.Error(err))
		return model.DashboardStats{}, err
	}
	r.committed = ticket
	log.Info("stats refreshed",
		zap.Int("repairs", stats.TotalRepairs),
		zap.Int("invoices", stats.Invoices.Count),
	)
	return stats, nil
}
