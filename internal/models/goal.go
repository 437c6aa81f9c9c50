package models

import "time"

// GoalPriority ranks savings goals against each other
type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "high"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityLow    GoalPriority = "low"
)

// Label returns the display name of the priority.
func (p GoalPriority) Label() string {
	switch p {
	case GoalPriorityHigh:
		return "High"
	case GoalPriorityMedium:
		return "Medium"
	case GoalPriorityLow:
		return "Low"
	}
	return "Other"
}

// Rank orders priorities from most (0) to least important.
func (p GoalPriority) Rank() int {
	switch p {
	case GoalPriorityHigh:
		return 0
	case GoalPriorityMedium:
		return 1
	case GoalPriorityLow:
		return 2
	}
	return 3
}

// Goal is a savings target. CurrentAmount may exceed TargetAmount.
type Goal struct {
	Base
	UserID              string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                string       `gorm:"not null" json:"name"`
	TargetAmount        int64        `gorm:"type:bigint;not null" json:"target_amount"`
	CurrentAmount       int64        `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	StartDate           time.Time    `gorm:"not null" json:"start_date"`
	TargetDate          time.Time    `gorm:"not null" json:"target_date"`
	MonthlyContribution int64        `gorm:"type:bigint;not null;default:0" json:"monthly_contribution"`
	Priority            GoalPriority `gorm:"not null;default:'medium'" json:"priority"`
}
