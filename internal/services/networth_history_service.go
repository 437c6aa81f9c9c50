package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finsight/internal/errors"
	"finsight/internal/finance"
	"finsight/internal/logger"
	"finsight/internal/metrics"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// netWorthHistoryService records and reads net worth snapshots.
type netWorthHistoryService struct {
	db        *gorm.DB
	snapshots SnapshotServicer
	metrics   *metrics.Collector
}

// NewNetWorthHistoryService creates a new NetWorthHistoryServicer. collector may be nil.
func NewNetWorthHistoryService(db *gorm.DB, snapshots SnapshotServicer, collector *metrics.Collector) NetWorthHistoryServicer {
	return &netWorthHistoryService{db: db, snapshots: snapshots, metrics: collector}
}

// RecordSnapshots computes and stores the net worth of every user at
// recordedAt. A row that already exists for the same user and time is
// overwritten, so reruns are idempotent. A user whose records fail is logged
// and skipped; the count covers the users recorded and the returned error joins
// every failure.
func (s *netWorthHistoryService) RecordSnapshots(recordedAt time.Time) (int, error) {
	userIDs, err := s.snapshots.UserIDs()
	if err != nil {
		return 0, err
	}

	count := 0
	defer func() { s.metrics.AddSnapshotsRecorded(count) }()
	var errs []error
	for _, userID := range userIDs {
		if err := s.recordSnapshot(userID, recordedAt); err != nil {
			logger.Get().Errorw("failed to record net worth snapshot",
				"user_id", userID,
				"recorded_at", recordedAt,
				"error", err,
			)
			errs = append(errs, err)
			continue
		}
		count++
	}

	return count, errors.Join(errs...)
}

// recordSnapshot upserts the snapshot of a single user.
func (s *netWorthHistoryService) recordSnapshot(userID string, recordedAt time.Time) error {
	row, err := s.computeSnapshot(userID, recordedAt)
	if err != nil {
		return err
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "recorded_at"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"net_worth", "total_assets", "liquid_assets", "investment_assets", "total_liabilities",
		}),
	}).Create(row).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// computeSnapshot runs the aggregator over a user's current records.
func (s *netWorthHistoryService) computeSnapshot(userID string, recordedAt time.Time) (*models.NetWorthSnapshot, error) {
	snap, err := s.snapshots.LoadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	nw, err := finance.Aggregate(snap.Accounts, finance.RevalueAssets(snap.Assets, recordedAt), snap.Investments, snap.Debts)
	if err != nil {
		return nil, apperrors.FromFinance(err)
	}

	return &models.NetWorthSnapshot{
		UserID:           userID,
		RecordedAt:       recordedAt,
		NetWorth:         nw.NetWorth,
		TotalAssets:      nw.TotalAssets,
		LiquidAssets:     nw.LiquidAssets,
		InvestmentAssets: nw.InvestmentAssets,
		TotalLiabilities: nw.TotalLiabilities,
	}, nil
}

// GetHistory returns paginated snapshots for a user within a date range, newest first.
func (s *netWorthHistoryService) GetHistory(
	userID string,
	from, to time.Time,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.NetWorthSnapshot{}).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, from, to)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.NetWorthSnapshot
	if err := base.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
