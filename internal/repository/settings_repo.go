package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

const settingsDoc = "settings"

// SettingsRepository manages the system/settings singleton document.
type SettingsRepository struct {
	client *firestore.Client
}

func NewSettingsRepository(client *firestore.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

// storedPricing distinguishes missing fields from zero values.
type storedPricing struct {
	Wage              *float64 `firestore:"wage"`
	MaterialMarkup    *float64 `firestore:"materialMarkup"`
	AdministrativeFee *float64 `firestore:"administrativeFee"`
	BusinessFee       *float64 `firestore:"businessFee"`
	ConsumablesFee    *float64 `firestore:"consumablesFee"`
}

type storedSettings struct {
	Pricing storedPricing `firestore:"pricing"`
}

// GetPricing loads the pricing settings. Each field missing from the stored
// document falls back to the matching field of defaults, and a missing
// document yields defaults unchanged.
func (r *SettingsRepository) GetPricing(ctx context.Context, defaults model.PricingSettings) (model.PricingSettings, error) {
	snap, err := r.client.Collection(systemCollection).Doc(settingsDoc).Get(ctx)
	if isNotFound(err) {
		return defaults, nil
	}
	if err != nil {
		return model.PricingSettings{}, fmt.Errorf("get settings: %w", err)
	}
	var stored storedSettings
	if err := snap.DataTo(&stored); err != nil {
		return model.PricingSettings{}, fmt.Errorf("decode settings: %w", err)
	}
	return mergePricing(stored.Pricing, defaults), nil
}

func mergePricing(p storedPricing, defaults model.PricingSettings) model.PricingSettings {
	out := defaults
	if p.Wage != nil {
		out.Wage = *p.Wage
	}
	if p.MaterialMarkup != nil {
		out.MaterialMarkup = *p.MaterialMarkup
	}
	if p.AdministrativeFee != nil {
		out.AdministrativeFee = *p.AdministrativeFee
	}
	if p.BusinessFee != nil {
		out.BusinessFee = *p.BusinessFee
	}
	if p.ConsumablesFee != nil {
		out.ConsumablesFee = *p.ConsumablesFee
	}
	return out
}

// Save overwrites the settings document.
func (r *SettingsRepository) Save(ctx context.Context, s model.Settings) error {
	ref := r.client.Collection(systemCollection).Doc(settingsDoc)
	if _, err := ref.Set(ctx, s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
