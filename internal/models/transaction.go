package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a money movement. Amount is always non-negative;
// the direction is carried by Type.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID   *string         `gorm:"type:uuid" json:"account_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Category    Category        `gorm:"not null" json:"category"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}
