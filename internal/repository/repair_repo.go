package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
	"github.com/goldbench/repairshop/apps/api/pkg/util"
	"google.golang.org/api/iterator"
)

// RepairQuery filters repair listings. Empty fields are not applied.
type RepairQuery struct {
	Status     string
	ClientName string
	Completed  *bool
}

// RepairRepository handles Firestore read/write for repairs.
type RepairRepository struct {
	client *firestore.Client
}

func NewRepairRepository(client *firestore.Client) *RepairRepository {
	return &RepairRepository{client: client}
}

// FetchAll loads every repair document.
func (r *RepairRepository) FetchAll(ctx context.Context) ([]model.Repair, error) {
	return r.collect(ctx, r.client.Collection(repairsCollection).Documents(ctx))
}

// List loads repairs matching q.
func (r *RepairRepository) List(ctx context.Context, q RepairQuery) ([]model.Repair, error) {
	query := r.client.Collection(repairsCollection).Query
	if q.Status != "" {
		query = query.Where("status", "==", q.Status)
	}
	if q.ClientName != "" {
		query = query.Where("clientName", "==", q.ClientName)
	}
	if q.Completed != nil {
		query = query.Where("completed", "==", *q.Completed)
	}
	return r.collect(ctx, query.Documents(ctx))
}

func (r *RepairRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]model.Repair, error) {
	defer iter.Stop()
	var out []model.Repair
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate repairs: %w", err)
		}
		m, err := decodeRepair(doc.Ref.ID, doc.Data())
		if err != nil {
			return nil, fmt.Errorf("decode repair %s: %w", doc.Ref.ID, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Get loads a single repair by document ID.
func (r *RepairRepository) Get(ctx context.Context, id string) (model.Repair, error) {
	snap, err := r.client.Collection(repairsCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return model.Repair{}, ErrNotFound
	}
	if err != nil {
		return model.Repair{}, fmt.Errorf("get repair %s: %w", id, err)
	}
	return decodeRepair(snap.Ref.ID, snap.Data())
}

// Create stores a new repair and returns it with its document ID.
func (r *RepairRepository) Create(ctx context.Context, m model.Repair) (model.Repair, error) {
	m.ID = RepairDocumentID(m)
	ref := r.client.Collection(repairsCollection).Doc(m.ID)
	_, err := ref.Create(ctx, m)
	if isAlreadyExists(err) {
		return model.Repair{}, ErrAlreadyExists
	}
	if err != nil {
		return model.Repair{}, fmt.Errorf("create repair %s: %w", m.ID, err)
	}
	return m, nil
}

// BatchUpsert writes repairs in batches to reduce round trips.
func (r *RepairRepository) BatchUpsert(ctx context.Context, repairs []model.Repair) error {
	if len(repairs) == 0 {
		return nil
	}
	for start := 0; start < len(repairs); start += batchSize {
		end := start + batchSize
		if end > len(repairs) {
			end = len(repairs)
		}
		batch := r.client.Batch()
		for _, m := range repairs[start:end] {
			m.ID = RepairDocumentID(m)
			batch.Set(r.client.Collection(repairsCollection).Doc(m.ID), m)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("commit batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// StatusUpdate is a status change on one repair.
type StatusUpdate struct {
	Status         string
	StatusCategory string
	Completed      bool
	CompletedAt    model.DateString
}

// UpdateStatus writes the status fields of one repair.
func (r *RepairRepository) UpdateStatus(ctx context.Context, id string, u StatusUpdate) error {
	updates := []firestore.Update{
		{Path: "status", Value: u.Status},
		{Path: "statusCategory", Value: u.StatusCategory},
		{Path: "completed", Value: u.Completed},
	}
	if !u.CompletedAt.IsZero() {
		updates = append(updates, firestore.Update{Path: "completedAt", Value: string(u.CompletedAt)})
	}
	_, err := r.client.Collection(repairsCollection).Doc(id).Update(ctx, updates)
	if isNotFound(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update status %s: %w", id, err)
	}
	return nil
}

// SetCategories writes statusCategory for the given repair IDs, leaving the
// status string itself untouched.
func (r *RepairRepository) SetCategories(ctx context.Context, categories map[string]string) error {
	ids := make([]string, 0, len(categories))
	for id := range categories {
		ids = append(ids, id)
	}
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := r.client.Batch()
		for _, id := range ids[start:end] {
			ref := r.client.Collection(repairsCollection).Doc(id)
			batch.Update(ref, []firestore.Update{{Path: "statusCategory", Value: categories[id]}})
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("commit category batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// RepairDocumentID returns the stored ID, or derives one from the repair
// number so re-imports update the same document.
func RepairDocumentID(m model.Repair) string {
	if m.ID != "" {
		return m.ID
	}
	return util.HashRepairKey(m.RepairNumber, m.ClientName)
}

// decodeRepair goes through JSON so legacy documents with string amounts,
// numeric text fields or timestamp-typed dates decode with the same tolerance
// as API input. Values JSON cannot represent (NaN doubles) are dropped.
func decodeRepair(id string, data map[string]any) (model.Repair, error) {
	fields := make(map[string]json.RawMessage, len(data))
	for k, v := range data {
		b, err := json.Marshal(v)
		if err != nil {
			continue
		}
		fields[k] = b
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return model.Repair{}, err
	}
	m, err := model.DecodeRepair(raw)
	if err != nil {
		return model.Repair{}, err
	}
	if m.ID == "" {
		m.ID = id
	}
	return m, nil
}
