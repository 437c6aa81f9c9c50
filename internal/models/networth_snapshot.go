package models

import (
	"time"

	"finsight/internal/uuid"

	"gorm.io/gorm"
)

// NetWorthSnapshot is a recorded point of a user's net worth history.
// This is immutable time-series data, so there is no Base embed and no soft delete.
type NetWorthSnapshot struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;uniqueIndex:idx_net_worth_snapshots_user_recorded" json:"user_id"`
	RecordedAt       time.Time `gorm:"not null;uniqueIndex:idx_net_worth_snapshots_user_recorded" json:"recorded_at"`
	NetWorth         int64     `gorm:"type:bigint;not null" json:"net_worth"`
	TotalAssets      int64     `gorm:"type:bigint;not null" json:"total_assets"`
	LiquidAssets     int64     `gorm:"type:bigint;not null" json:"liquid_assets"`
	InvestmentAssets int64     `gorm:"type:bigint;not null" json:"investment_assets"`
	TotalLiabilities int64     `gorm:"type:bigint;not null" json:"total_liabilities"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *NetWorthSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
