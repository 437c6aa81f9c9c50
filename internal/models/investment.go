package models

// Investment represents a holding of a single security.
// Prices are per unit in minor currency units.
type Investment struct {
	Base
	UserID        string  `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID     *string `gorm:"type:uuid" json:"account_id,omitempty"`
	Symbol        string  `gorm:"not null" json:"symbol"`
	Name          string  `json:"name"`
	Quantity      float64 `gorm:"not null" json:"quantity"`
	PurchasePrice int64   `gorm:"type:bigint;not null" json:"purchase_price"`
	CurrentPrice  int64   `gorm:"type:bigint;not null" json:"current_price"`
}
