package models

import "time"

// AssetType represents the kind of physical or financial asset
type AssetType string

const (
	AssetTypeRealEstate     AssetType = "real_estate"
	AssetTypeVehicle        AssetType = "vehicle"
	AssetTypeElectronics    AssetType = "electronics"
	AssetTypeJewelry        AssetType = "jewelry"
	AssetTypeCashEquivalent AssetType = "cash_equivalent"
	AssetTypeCollectible    AssetType = "collectible"
	AssetTypeOther          AssetType = "other"
)

// Label returns the display name of the asset type.
func (t AssetType) Label() string {
	switch t {
	case AssetTypeRealEstate:
		return "Real Estate"
	case AssetTypeVehicle:
		return "Vehicle"
	case AssetTypeElectronics:
		return "Electronics"
	case AssetTypeJewelry:
		return "Jewelry"
	case AssetTypeCashEquivalent:
		return "Cash Equivalent"
	case AssetTypeCollectible:
		return "Collectible"
	}
	return "Other"
}

// Asset represents something the user owns outside of their accounts.
// IsLiquid is a static classification set by the user.
type Asset struct {
	Base
	UserID                string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                  string     `gorm:"not null" json:"name"`
	Type                  AssetType  `gorm:"not null" json:"type"`
	CurrentValue          int64      `gorm:"type:bigint;not null;default:0" json:"current_value"`
	IsLiquid              bool       `gorm:"default:false" json:"is_liquid"`
	PurchaseDate          *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice         *int64     `gorm:"type:bigint" json:"purchase_price,omitempty"`
	ExpectedLifespanYears *float64   `json:"expected_lifespan_years,omitempty"`
}
