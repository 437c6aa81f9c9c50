package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/models"
)

const daysPerYear = 365.25

// CurrentValue estimates the value of a depreciating item with straight-line
// depreciation over its expected lifespan. The result never exceeds
// purchasePrice, never increases as asOf advances and is floored at 0.
//
// A lifespan of zero or less counts as fully depreciated. A zero purchase
// date or a non-positive price yields 0. When asOf precedes the purchase the
// age is clamped to zero, so no appreciation is assumed.
func CurrentValue(purchasePrice int64, purchaseDate time.Time, expectedLifespanYears float64, asOf time.Time) int64 {
	if purchasePrice <= 0 || purchaseDate.IsZero() {
		return 0
	}
	if expectedLifespanYears <= 0 || !finite(expectedLifespanYears) {
		return 0
	}
	remaining := fractionRemaining(ageYears(purchaseDate, asOf), expectedLifespanYears)
	value := cents(dec(purchasePrice).Mul(remaining))
	if value < 0 {
		return 0
	}
	return value
}

func ageYears(purchaseDate, asOf time.Time) float64 {
	if !asOf.After(purchaseDate) {
		return 0
	}
	return asOf.Sub(purchaseDate).Hours() / 24 / daysPerYear
}

func fractionRemaining(ageYears, lifespanYears float64) decimal.Decimal {
	used := decimal.NewFromFloat(ageYears).Div(decimal.NewFromFloat(lifespanYears))
	remaining := decimal.NewFromInt(1).Sub(used)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// AssetValuation is the depreciation estimate of a single asset.
type AssetValuation struct {
	AssetID          string           `json:"asset_id"`
	Name             string           `json:"name"`
	Type             models.AssetType `json:"type"`
	StoredValue      int64            `json:"stored_value"`
	PurchasePrice    int64            `json:"purchase_price"`
	EstimatedValue   int64            `json:"estimated_value"`
	AgeYears         float64          `json:"age_years"`
	PercentRemaining float64          `json:"percent_remaining"`
	// Depreciating is false when purchase price, purchase date or lifespan
	// is missing. Callers should then drop any depreciation framing.
	Depreciating bool `json:"depreciating"`
}

// ValueAsset estimates an asset's depreciated value as of the given time.
func ValueAsset(a models.Asset, asOf time.Time) AssetValuation {
	v := AssetValuation{
		AssetID:     a.ID,
		Name:        a.Name,
		Type:        a.Type,
		StoredValue: a.CurrentValue,
	}
	if !depreciable(a) {
		return v
	}
	v.Depreciating = true
	v.PurchasePrice = *a.PurchasePrice
	v.AgeYears = ageYears(*a.PurchaseDate, asOf)
	v.EstimatedValue = CurrentValue(*a.PurchasePrice, *a.PurchaseDate, *a.ExpectedLifespanYears, asOf)
	if v.PurchasePrice > 0 {
		v.PercentRemaining = percentOf(v.EstimatedValue, v.PurchasePrice)
	}
	return v
}

// ValueAssets values every asset in input order.
func ValueAssets(assets []models.Asset, asOf time.Time) []AssetValuation {
	out := make([]AssetValuation, 0, len(assets))
	for _, a := range assets {
		out = append(out, ValueAsset(a, asOf))
	}
	return out
}

// RevalueAssets returns copies of assets where an asset without a stored
// value (zero) but with complete depreciation inputs carries its estimate as
// CurrentValue. The input slice is not modified.
func RevalueAssets(assets []models.Asset, asOf time.Time) []models.Asset {
	out := make([]models.Asset, len(assets))
	copy(out, assets)
	for i := range out {
		if out[i].CurrentValue == 0 && depreciable(out[i]) {
			out[i].CurrentValue = CurrentValue(*out[i].PurchasePrice, *out[i].PurchaseDate, *out[i].ExpectedLifespanYears, asOf)
		}
	}
	return out
}

func depreciable(a models.Asset) bool {
	return a.PurchasePrice != nil && a.PurchaseDate != nil && !a.PurchaseDate.IsZero() && a.ExpectedLifespanYears != nil
}
