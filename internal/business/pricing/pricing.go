package pricing

import (
	"math"

	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

// Default pricing used when settings are unavailable.
const (
	DefaultWage              = 45.0
	DefaultMaterialMarkup    = 1.5
	DefaultAdministrativeFee = 0.15
	DefaultBusinessFee       = 0.25
	DefaultConsumablesFee    = 0.08
)

// Pricing holds the shop's rate card. Fees are decimal fractions.
type Pricing struct {
	Wage              float64
	MaterialMarkup    float64
	AdministrativeFee float64
	BusinessFee       float64
	ConsumablesFee    float64
}

// Defaults returns the built-in rate card (business multiplier 1.48).
func Defaults() Pricing {
	return Pricing{
		Wage:              DefaultWage,
		MaterialMarkup:    DefaultMaterialMarkup,
		AdministrativeFee: DefaultAdministrativeFee,
		BusinessFee:       DefaultBusinessFee,
		ConsumablesFee:    DefaultConsumablesFee,
	}
}

// FromSettings converts the stored settings shape.
func FromSettings(s model.PricingSettings) Pricing {
	return Pricing{
		Wage:              s.Wage,
		MaterialMarkup:    s.MaterialMarkup,
		AdministrativeFee: s.AdministrativeFee,
		BusinessFee:       s.BusinessFee,
		ConsumablesFee:    s.ConsumablesFee,
	}
}

// Settings converts back to the stored settings shape.
func (p Pricing) Settings() model.PricingSettings {
	return model.PricingSettings{
		Wage:              p.Wage,
		MaterialMarkup:    p.MaterialMarkup,
		AdministrativeFee: p.AdministrativeFee,
		BusinessFee:       p.BusinessFee,
		ConsumablesFee:    p.ConsumablesFee,
	}
}

// BusinessMultiplier is 1 plus the sum of the fee fractions.
func (p Pricing) BusinessMultiplier() float64 {
	return p.AdministrativeFee + p.BusinessFee + p.ConsumablesFee + 1
}

// Breakdown exposes the intermediate values of a price computation.
type Breakdown struct {
	LaborHours         float64 `json:"laborHours"`
	MaterialCost       float64 `json:"materialCost"`
	LaborCost          float64 `json:"laborCost"`
	MarkedUpMaterials  float64 `json:"markedUpMaterials"`
	Subtotal           float64 `json:"subtotal"`
	BusinessMultiplier float64 `json:"businessMultiplier"`
	Price              float64 `json:"price"`
}

// Quote computes the price with its intermediate values. Inputs are assumed
// sanitized; see Sanitize.
func Quote(laborHours, materialCost float64, p Pricing) Breakdown {
	laborCost := laborHours * p.Wage
	materials := materialCost * p.MaterialMarkup
	subtotal := laborCost + materials
	multiplier := p.BusinessMultiplier()
	return Breakdown{
		LaborHours:         laborHours,
		MaterialCost:       materialCost,
		LaborCost:          laborCost,
		MarkedUpMaterials:  materials,
		Subtotal:           subtotal,
		BusinessMultiplier: multiplier,
		Price:              RoundCents(subtotal * multiplier),
	}
}

// Price returns the rounded price for a repair.
func Price(laborHours, materialCost float64, p Pricing) float64 {
	return Quote(laborHours, materialCost, p).Price
}

// RoundCents rounds to two decimals by scaling to cents.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Sanitize coerces form input: NaN, infinities and negatives become 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Validate checks a rate card before it is persisted.
func (p Pricing) Validate() error {
	switch {
	case math.IsNaN(p.Wage) || p.Wage < 0:
		return fieldError("wage", "must be >= 0")
	case math.IsNaN(p.MaterialMarkup) || p.MaterialMarkup < 1:
		return fieldError("materialMarkup", "must be >= 1")
	}
	fees := []struct {
		name string
		v    float64
	}{
		{"administrativeFee", p.AdministrativeFee},
		{"businessFee", p.BusinessFee},
		{"consumablesFee", p.ConsumablesFee},
	}
	for _, f := range fees {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 1 {
			return fieldError(f.name, "must be a fraction between 0 and 1")
		}
	}
	return nil
}

// ValidationError names the offending field of a rate card.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Reason }

func fieldError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
