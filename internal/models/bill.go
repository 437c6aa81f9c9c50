package models

import "time"

// BillFrequency represents how often a bill recurs
type BillFrequency string

const (
	BillFrequencyWeekly    BillFrequency = "weekly"
	BillFrequencyBiweekly  BillFrequency = "biweekly"
	BillFrequencyMonthly   BillFrequency = "monthly"
	BillFrequencyQuarterly BillFrequency = "quarterly"
	BillFrequencyYearly    BillFrequency = "yearly"
	BillFrequencyOneTime   BillFrequency = "one_time"
)

// Label returns the display name of the frequency.
func (f BillFrequency) Label() string {
	switch f {
	case BillFrequencyWeekly:
		return "Weekly"
	case BillFrequencyBiweekly:
		return "Every Two Weeks"
	case BillFrequencyMonthly:
		return "Monthly"
	case BillFrequencyQuarterly:
		return "Quarterly"
	case BillFrequencyYearly:
		return "Yearly"
	case BillFrequencyOneTime:
		return "One Time"
	}
	return "Other"
}

// BillStatus represents the payment state of the current bill cycle
type BillStatus string

const (
	BillStatusActive  BillStatus = "active"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

// Bill represents a recurring payment obligation
type Bill struct {
	Base
	UserID    string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string        `gorm:"not null" json:"name"`
	Amount    int64         `gorm:"type:bigint;not null" json:"amount"`
	Frequency BillFrequency `gorm:"not null" json:"frequency"`
	Category  Category      `gorm:"not null" json:"category"`
	DueDate   time.Time     `gorm:"not null" json:"due_date"`
	IsAutoPay bool          `gorm:"default:false" json:"is_auto_pay"`
	Status    BillStatus    `gorm:"not null;default:'active'" json:"status"`
}
