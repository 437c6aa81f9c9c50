package models

// BudgetItem is the amount planned for one category in one calendar month.
// Month uses the "2006-01" layout.
type BudgetItem struct {
	Base
	UserID         string   `gorm:"type:uuid;not null;index" json:"user_id"`
	Category       Category `gorm:"not null" json:"category"`
	BudgetedAmount int64    `gorm:"type:bigint;not null" json:"budgeted_amount"`
	Month          string   `gorm:"size:7;not null;index" json:"month"`
}
