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

// DesignRequestRepository manages CAD design request lifecycle records.
type DesignRequestRepository struct {
	client *firestore.Client
	now    func() time.Time
}

func NewDesignRequestRepository(client *firestore.Client) *DesignRequestRepository {
	return &DesignRequestRepository{client: client, now: time.Now}
}

// Create stores a new request in pending status.
func (r *DesignRequestRepository) Create(ctx context.Context, req model.DesignRequest) (model.DesignRequest, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := r.now().UTC()
	req.Status = model.DesignPending
	req.CreatedAt = now
	req.UpdatedAt = now
	ref := r.client.Collection(designRequestsCollection).Doc(req.ID)
	_, err := ref.Create(ctx, req)
	if isAlreadyExists(err) {
		return model.DesignRequest{}, ErrAlreadyExists
	}
	if err != nil {
		return model.DesignRequest{}, fmt.Errorf("create design request %s: %w", req.ID, err)
	}
	return req, nil
}

func (r *DesignRequestRepository) Get(ctx context.Context, id string) (model.DesignRequest, error) {
	snap, err := r.client.Collection(designRequestsCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return model.DesignRequest{}, ErrNotFound
	}
	if err != nil {
		return model.DesignRequest{}, fmt.Errorf("get design request %s: %w", id, err)
	}
	return decodeDesignRequest(snap)
}

// List returns the newest requests first. limit <= 0 means no limit.
func (r *DesignRequestRepository) List(ctx context.Context, limit int) ([]model.DesignRequest, error) {
	query := r.client.Collection(designRequestsCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()
	var out []model.DesignRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate design requests: %w", err)
		}
		req, err := decodeDesignRequest(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

// Transition moves a request to next, rejecting moves its current status
// does not allow with model.ErrInvalidTransition.
func (r *DesignRequestRepository) Transition(ctx context.Context, id string, next model.DesignStatus) (model.DesignRequest, error) {
	ref := r.client.Collection(designRequestsCollection).Doc(id)
	var updated model.DesignRequest
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if isNotFound(err) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		req, err := decodeDesignRequest(snap)
		if err != nil {
			return err
		}
		if !req.Status.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, req.Status, next)
		}
		req.Status = next
		req.UpdatedAt = r.now().UTC()
		updated = req
		return tx.Set(ref, req)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.DesignRequest{}, ErrNotFound
		}
		return model.DesignRequest{}, fmt.Errorf("transition design request %s: %w", id, err)
	}
	return updated, nil
}

func decodeDesignRequest(snap *firestore.DocumentSnapshot) (model.DesignRequest, error) {
	var req model.DesignRequest
	if err := snap.DataTo(&req); err != nil {
		return model.DesignRequest{}, fmt.Errorf("decode design request %s: %w", snap.Ref.ID, err)
	}
	if req.ID == "" {
		req.ID = snap.Ref.ID
	}
	return req, nil
}
