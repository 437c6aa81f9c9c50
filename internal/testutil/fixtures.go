package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finsight/internal/models"
	"finsight/internal/uuid"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a fresh user id. Users live in the external auth
// service, so records only carry the id.
func NewUserID() string {
	return uuid.New()
}

func create(t *testing.T, db *gorm.DB, record any, what string) {
	t.Helper()
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test %s: %v", what, err)
	}
}

// CreateTestAccount creates an active account with the given type and balance (in cents).
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string, accountType models.AccountType, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Account %d", nextID()),
		Type:     accountType,
		Balance:  balance,
		Currency: "USD",
		IsActive: true,
	}
	create(t, db, account, "account")
	return account
}

// CreateTestCreditCard creates a credit card account with a limit and minimum payment.
func CreateTestCreditCard(t *testing.T, db *gorm.DB, userID string, balance, limit, minimum int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:         userID,
		Name:           fmt.Sprintf("Card %d", nextID()),
		Type:           models.AccountTypeCreditCard,
		Balance:        balance,
		Currency:       "USD",
		IsActive:       true,
		CreditLimit:    &limit,
		MinimumPayment: &minimum,
	}
	create(t, db, account, "credit card")
	return account
}

// DeactivateAccount marks an account closed. GORM skips false on create
// because of the column default, so this runs as an update.
func DeactivateAccount(t *testing.T, db *gorm.DB, account *models.Account) {
	t.Helper()

	if err := db.Model(account).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate account: %v", err)
	}
}

// CreateTestAsset creates an asset without depreciation inputs.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, assetType models.AssetType, value int64, liquid bool) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:       userID,
		Name:         fmt.Sprintf("Asset %d", nextID()),
		Type:         assetType,
		CurrentValue: value,
		IsLiquid:     liquid,
	}
	create(t, db, asset, "asset")
	return asset
}

// CreateTestDepreciatingAsset creates an asset with purchase data and no stored value.
func CreateTestDepreciatingAsset(t *testing.T, db *gorm.DB, userID string, price int64, purchased time.Time, lifespanYears float64) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:                userID,
		Name:                  fmt.Sprintf("Equipment %d", nextID()),
		Type:                  models.AssetTypeElectronics,
		PurchasePrice:         &price,
		PurchaseDate:          &purchased,
		ExpectedLifespanYears: &lifespanYears,
	}
	create(t, db, asset, "asset")
	return asset
}

// CreateTestDebt creates a debt whose original amount equals twice the balance.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID string, balance int64, rate float64, minimum int64) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		UserID:                    userID,
		Creditor:                  fmt.Sprintf("Lender %d", nextID()),
		Type:                      models.DebtTypePersonalLoan,
		OriginalAmount:            balance * 2,
		CurrentBalance:            balance,
		InterestRateAnnualPercent: rate,
		MinimumPayment:            minimum,
	}
	create(t, db, debt, "debt")
	return debt
}

// CreateTestBill creates an active bill.
func CreateTestBill(t *testing.T, db *gorm.DB, userID string, amount int64, frequency models.BillFrequency, due time.Time) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		UserID:    userID,
		Name:      fmt.Sprintf("Bill %d", nextID()),
		Amount:    amount,
		Frequency: frequency,
		Category:  models.CategoryUtilities,
		DueDate:   due,
		Status:    models.BillStatusActive,
	}
	create(t, db, bill, "bill")
	return bill
}

// CreateTestTransaction creates a transaction not tied to an account.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category models.Category, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Description: fmt.Sprintf("Transaction %d", nextID()),
		Date:        date,
	}
	create(t, db, tx, "transaction")
	return tx
}

// CreateTestBudgetItem creates a budget item for a "2006-01" month.
func CreateTestBudgetItem(t *testing.T, db *gorm.DB, userID string, category models.Category, amount int64, month string) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		UserID:         userID,
		Category:       category,
		BudgetedAmount: amount,
		Month:          month,
	}
	create(t, db, item, "budget item")
	return item
}

// CreateTestGoal creates a medium priority goal running from start to target.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target, current int64, start, targetDate time.Time, contribution int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:              userID,
		Name:                fmt.Sprintf("Goal %d", nextID()),
		TargetAmount:        target,
		CurrentAmount:       current,
		StartDate:           start,
		TargetDate:          targetDate,
		MonthlyContribution: contribution,
		Priority:            models.GoalPriorityMedium,
	}
	create(t, db, goal, "goal")
	return goal
}

// CreateTestInvestment creates a holding with the given quantity and per-unit prices (in cents).
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID string, quantity float64, purchasePrice, currentPrice int64) *models.Investment {
	t.Helper()

	n := nextID()
	inv := &models.Investment{
		UserID:        userID,
		Symbol:        fmt.Sprintf("SYM%d", n),
		Name:          fmt.Sprintf("Holding %d", n),
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
	}
	create(t, db, inv, "investment")
	return inv
}
