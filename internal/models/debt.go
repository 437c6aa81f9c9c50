package models

import "time"

// DebtType represents the type of liability
type DebtType string

const (
	DebtTypeMortgage     DebtType = "mortgage"
	DebtTypeAutoLoan     DebtType = "auto_loan"
	DebtTypeStudentLoan  DebtType = "student_loan"
	DebtTypePersonalLoan DebtType = "personal_loan"
	DebtTypeMedical      DebtType = "medical"
	DebtTypeOther        DebtType = "other"
)

// Label returns the display name of the debt type.
func (t DebtType) Label() string {
	switch t {
	case DebtTypeMortgage:
		return "Mortgage"
	case DebtTypeAutoLoan:
		return "Auto Loan"
	case DebtTypeStudentLoan:
		return "Student Loan"
	case DebtTypePersonalLoan:
		return "Personal Loan"
	case DebtTypeMedical:
		return "Medical"
	}
	return "Other"
}

// Debt represents a liability outside of credit card accounts.
type Debt struct {
	Base
	UserID                    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Creditor                  string    `gorm:"not null" json:"creditor"`
	Type                      DebtType  `gorm:"not null" json:"type"`
	OriginalAmount            int64     `gorm:"type:bigint;not null" json:"original_amount"`
	CurrentBalance            int64     `gorm:"type:bigint;not null" json:"current_balance"`
	InterestRateAnnualPercent float64   `gorm:"not null;default:0" json:"interest_rate_annual_percent"`
	MinimumPayment            int64     `gorm:"type:bigint;not null;default:0" json:"minimum_payment"`
	DueDate                   time.Time `json:"due_date"`
}
