package models

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeRetirement AccountType = "retirement"
)

// Label returns the display name of the account type.
func (t AccountType) Label() string {
	switch t {
	case AccountTypeChecking:
		return "Checking"
	case AccountTypeSavings:
		return "Savings"
	case AccountTypeCreditCard:
		return "Credit Card"
	case AccountTypeInvestment:
		return "Investment"
	case AccountTypeRetirement:
		return "Retirement"
	}
	return "Other"
}

// IsCredit reports whether balances of this type are amounts owed.
func (t AccountType) IsCredit() bool {
	return t == AccountTypeCreditCard
}

// IsLiquid reports whether balances of this type count as cash on hand.
func (t AccountType) IsLiquid() bool {
	return t == AccountTypeChecking || t == AccountTypeSavings
}

// Account represents a financial account.
// For credit cards Balance is the amount owed, not the available credit.
type Account struct {
	Base
	UserID         string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string      `gorm:"not null" json:"name"`
	Type           AccountType `gorm:"not null" json:"type"`
	Balance        int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	Currency       string      `gorm:"not null;default:'USD'" json:"currency"`
	IsActive       bool        `gorm:"default:true" json:"is_active"`
	CreditLimit    *int64      `gorm:"type:bigint" json:"credit_limit,omitempty"`
	MinimumPayment *int64      `gorm:"type:bigint" json:"minimum_payment,omitempty"`
}
