package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

const statsDoc = "stats"

// StatsRepository manages the system/stats singleton document.
type StatsRepository struct {
	client *firestore.Client
}

func NewStatsRepository(client *firestore.Client) *StatsRepository {
	return &StatsRepository{client: client}
}

func (r *StatsRepository) SaveDashboardStats(ctx context.Context, stats model.DashboardStats) error {
	ref := r.client.Collection(systemCollection).Doc(statsDoc)
	if _, err := ref.Set(ctx, stats); err != nil {
		return fmt.Errorf("save dashboard stats: %w", err)
	}
	return nil
}

// GetDashboardStats returns ErrNotFound until the first refresh has run.
func (r *StatsRepository) GetDashboardStats(ctx context.Context) (model.DashboardStats, error) {
	snap, err := r.client.Collection(systemCollection).Doc(statsDoc).Get(ctx)
	if isNotFound(err) {
		return model.DashboardStats{}, ErrNotFound
	}
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("get dashboard stats: %w", err)
	}
	var stats model.DashboardStats
	if err := snap.DataTo(&stats); err != nil {
		return model.DashboardStats{}, fmt.Errorf("decode dashboard stats: %w", err)
	}
	return stats, nil
}
