package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goldbench/repairshop/apps/api/internal/platform/securitycode"
	"github.com/goldbench/repairshop/apps/api/internal/repository"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

type fakeRepairs struct {
	mu       sync.Mutex
	items    map[string]model.Repair
	upserted []model.Repair
	updates  map[string]repository.StatusUpdate
}

func newFakeRepairs(items ...model.Repair) *fakeRepairs {
	f := &fakeRepairs{items: map[string]model.Repair{}, updates: map[string]repository.StatusUpdate{}}
	for _, m := range items {
		f.items[m.ID] = m
	}
	return f
}

func (f *fakeRepairs) List(_ context.Context, q repository.RepairQuery) ([]model.Repair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Repair
	for _, m := range f.items {
		if q.Status != "" && m.Status != q.Status {
			continue
		}
		if q.ClientName != "" && m.ClientName != q.ClientName {
			continue
		}
		if q.Completed != nil && m.Completed != *q.Completed {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepairs) Get(_ context.Context, id string) (model.Repair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok {
		return model.Repair{}, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeRepairs) Create(_ context.Context, m model.Repair) (model.Repair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = repository.RepairDocumentID(m)
	if _, ok := f.items[m.ID]; ok {
		return model.Repair{}, repository.ErrAlreadyExists
	}
	f.items[m.ID] = m
	return m, nil
}

func (f *fakeRepairs) BatchUpsert(_ context.Context, repairs []model.Repair) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, repairs...)
	return nil
}

func (f *fakeRepairs) UpdateStatus(_ context.Context, id string, u repository.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	f.updates[id] = u
	return nil
}

type fakeStats struct {
	stats model.DashboardStats
	err   error
}

func (f fakeStats) GetDashboardStats(context.Context) (model.DashboardStats, error) {
	return f.stats, f.err
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) (model.DashboardStats, error) {
	f.calls++
	if f.err != nil {
		return model.DashboardStats{}, f.err
	}
	return model.DashboardStats{TotalRepairs: 7}, nil
}

type fakeSettings struct {
	stored *model.PricingSettings
	saved  []model.Settings
}

func (f *fakeSettings) GetPricing(_ context.Context, defaults model.PricingSettings) (model.PricingSettings, error) {
	if f.stored == nil {
		return defaults, nil
	}
	return *f.stored, nil
}

func (f *fakeSettings) Save(_ context.Context, s model.Settings) error {
	f.saved = append(f.saved, s)
	p := s.Pricing
	f.stored = &p
	return nil
}

type fakeInvoices struct {
	mu    sync.Mutex
	seq   int
	items map[string]model.Invoice
}

func newFakeInvoices() *fakeInvoices {
	return &fakeInvoices{items: map[string]model.Invoice{}}
}

func (f *fakeInvoices) Create(_ context.Context, inv model.Invoice) (model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	inv.ID = fmt.Sprintf("inv-%d", f.seq)
	f.items[inv.ID] = inv
	return inv, nil
}

func (f *fakeInvoices) Get(_ context.Context, id string) (model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.items[id]
	if !ok {
		return model.Invoice{}, repository.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInvoices) AddPayment(_ context.Context, id string, p model.Payment) (model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.items[id]
	if !ok {
		return model.Invoice{}, repository.ErrNotFound
	}
	inv.Payments = append(inv.Payments, p)
	f.items[id] = inv
	return inv, nil
}

type fakeDesigns struct {
	mu    sync.Mutex
	seq   int
	items map[string]model.DesignRequest
}

func newFakeDesigns() *fakeDesigns {
	return &fakeDesigns{items: map[string]model.DesignRequest{}}
}

func (f *fakeDesigns) Create(_ context.Context, req model.DesignRequest) (model.DesignRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	req.ID = fmt.Sprintf("dr-%d", f.seq)
	req.Status = model.DesignPending
	f.items[req.ID] = req
	return req, nil
}

func (f *fakeDesigns) Get(_ context.Context, id string) (model.DesignRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.items[id]
	if !ok {
		return model.DesignRequest{}, repository.ErrNotFound
	}
	return req, nil
}

func (f *fakeDesigns) List(_ context.Context, limit int) ([]model.DesignRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.DesignRequest
	for _, req := range f.items {
		if len(out) == limit {
			break
		}
		out = append(out, req)
	}
	return out, nil
}

func (f *fakeDesigns) Transition(_ context.Context, id string, next model.DesignStatus) (model.DesignRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.items[id]
	if !ok {
		return model.DesignRequest{}, repository.ErrNotFound
	}
	if !req.Status.CanTransition(next) {
		return model.DesignRequest{}, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, req.Status, next)
	}
	req.Status = next
	f.items[id] = req
	return req, nil
}

// fixedCodes hands out one known code per subject.
type fixedCodes struct {
	code   string
	issued map[string]bool
}

func newFixedCodes(code string) *fixedCodes {
	return &fixedCodes{code: code, issued: map[string]bool{}}
}

func (f *fixedCodes) Issue(subject string) (string, time.Time, error) {
	f.issued[subject] = true
	return f.code, time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), nil
}

func (f *fixedCodes) Verify(subject, code string) error {
	if !f.issued[subject] || code != f.code {
		return securitycode.ErrInvalidCode
	}
	delete(f.issued, subject)
	return nil
}
