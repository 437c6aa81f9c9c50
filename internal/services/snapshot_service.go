package services

import (
	"slices"

	"gorm.io/gorm"

	apperrors "finsight/internal/errors"
	"finsight/internal/finance"
	"finsight/internal/models"
)

// snapshotService loads one user's records into an engine snapshot.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB) SnapshotServicer {
	return &snapshotService{db: db}
}

// LoadSnapshot reads every record of a user. Closed accounts are left out;
// soft-deleted rows are excluded by GORM.
func (s *snapshotService) LoadSnapshot(userID string) (*finance.Snapshot, error) {
	var snap finance.Snapshot

	err := s.db.Transaction(func(tx *gorm.DB) error {
		owned := func() *gorm.DB {
			return tx.Where("user_id = ?", userID).Order("created_at, id")
		}
		if err := owned().Where("is_active = ?", true).Find(&snap.Accounts).Error; err != nil {
			return err
		}
		for _, dest := range []any{&snap.Assets, &snap.Debts, &snap.Bills, &snap.Transactions, &snap.BudgetItems, &snap.Goals, &snap.Investments} {
			if err := owned().Find(dest).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snap, nil
}

// UserIDs returns every user that owns at least one account, asset, debt or
// holding, sorted.
func (s *snapshotService) UserIDs() ([]string, error) {
	seen := make(map[string]bool)
	for _, model := range []any{&models.Account{}, &models.Asset{}, &models.Debt{}, &models.Investment{}} {
		var ids []string
		if err := s.db.Model(model).Distinct("user_id").Pluck("user_id", &ids).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, id := range ids {
			seen[id] = true
		}
	}

	userIDs := make([]string, 0, len(seen))
	for id := range seen {
		userIDs = append(userIDs, id)
	}
	slices.Sort(userIDs)
	return userIDs, nil
}
