package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// InvoiceRepository handles Firestore read/write for custom-ticket invoices.
type InvoiceRepository struct {
	client *firestore.Client
	now    func() time.Time
}

func NewInvoiceRepository(client *firestore.Client) *InvoiceRepository {
	return &InvoiceRepository{client: client, now: time.Now}
}

// Create stores a new invoice, assigning an ID when none is set.
func (r *InvoiceRepository) Create(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = model.NewDateString(r.now())
	}
	ref := r.client.Collection(invoicesCollection).Doc(inv.ID)
	_, err := ref.Create(ctx, inv)
	if isAlreadyExists(err) {
		return model.Invoice{}, ErrAlreadyExists
	}
	if err != nil {
		return model.Invoice{}, fmt.Errorf("create invoice %s: %w", inv.ID, err)
	}
	return inv, nil
}

func (r *InvoiceRepository) Get(ctx context.Context, id string) (model.Invoice, error) {
	snap, err := r.client.Collection(invoicesCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return model.Invoice{}, ErrNotFound
	}
	if err != nil {
		return model.Invoice{}, fmt.Errorf("get invoice %s: %w", id, err)
	}
	return decodeInvoice(snap)
}

func (r *InvoiceRepository) FetchAll(ctx context.Context) ([]model.Invoice, error) {
	iter := r.client.Collection(invoicesCollection).Documents(ctx)
	defer iter.Stop()
	var out []model.Invoice
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate invoices: %w", err)
		}
		inv, err := decodeInvoice(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

// AddPayment appends a payment inside a transaction so concurrent payments
// on the same invoice are not lost.
func (r *InvoiceRepository) AddPayment(ctx context.Context, id string, p model.Payment) (model.Invoice, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = r.now().UTC()
	}
	ref := r.client.Collection(invoicesCollection).Doc(id)
	var updated model.Invoice
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if isNotFound(err) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		inv, err := decodeInvoice(snap)
		if err != nil {
			return err
		}
		inv.Payments = append(inv.Payments, p)
		updated = inv
		return tx.Set(ref, inv)
	})
	if errors.Is(err, ErrNotFound) {
		return model.Invoice{}, ErrNotFound
	}
	if err != nil {
		return model.Invoice{}, fmt.Errorf("add payment to invoice %s: %w", id, err)
	}
	return updated, nil
}

func decodeInvoice(snap *firestore.DocumentSnapshot) (model.Invoice, error) {
	var inv model.Invoice
	if err := snap.DataTo(&inv); err != nil {
		return model.Invoice{}, fmt.Errorf("decode invoice %s: %w", snap.Ref.ID, err)
	}
	if inv.ID == "" {
		inv.ID = snap.Ref.ID
	}
	return inv, nil
}
