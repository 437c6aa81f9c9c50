package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/finance"
	"finsight/internal/models"
	"finsight/internal/services"
	"finsight/internal/uuid"
)

// EvaluateHandler computes a report over records supplied in the request.
type EvaluateHandler struct {
	insightService services.InsightServicer
}

// NewEvaluateHandler creates a new EvaluateHandler.
func NewEvaluateHandler(insightService services.InsightServicer) *EvaluateHandler {
	return &EvaluateHandler{insightService: insightService}
}

// AccountInput is an account in an evaluate request.
type AccountInput struct {
	ID             string             `json:"id"`
	Name           string             `json:"name" binding:"required"`
	Type           models.AccountType `json:"type" binding:"required,account_type"`
	Balance        int64              `json:"balance"`
	Currency       string             `json:"currency" binding:"omitempty,iso4217"`
	CreditLimit    *int64             `json:"credit_limit" binding:"omitempty,min=0"`
	MinimumPayment *int64             `json:"minimum_payment" binding:"omitempty,min=0"`
}

// AssetInput is an asset in an evaluate request.
type AssetInput struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name" binding:"required"`
	Type                  models.AssetType `json:"type" binding:"required,asset_type"`
	CurrentValue          int64            `json:"current_value" binding:"min=0"`
	IsLiquid              bool             `json:"is_liquid"`
	PurchaseDate          *time.Time       `json:"purchase_date"`
	PurchasePrice         *int64           `json:"purchase_price" binding:"omitempty,min=0"`
	ExpectedLifespanYears *float64         `json:"expected_lifespan_years" binding:"omitempty,gt=0"`
}

// DebtInput is a debt in an evaluate request.
type DebtInput struct {
	ID                        string          `json:"id"`
	Creditor                  string          `json:"creditor" binding:"required"`
	Type                      models.DebtType `json:"type" binding:"required,debt_type"`
	OriginalAmount            int64           `json:"original_amount" binding:"min=0"`
	CurrentBalance            int64           `json:"current_balance" binding:"min=0"`
	InterestRateAnnualPercent float64         `json:"interest_rate_annual_percent" binding:"min=0"`
	MinimumPayment            int64           `json:"minimum_payment" binding:"min=0"`
	DueDate                   time.Time       `json:"due_date"`
}

// BillInput is a recurring bill in an evaluate request.
type BillInput struct {
	ID        string               `json:"id"`
	Name      string               `json:"name" binding:"required"`
	Amount    int64                `json:"amount" binding:"min=0"`
	Frequency models.BillFrequency `json:"frequency" binding:"required,bill_frequency"`
	Category  models.Category      `json:"category" binding:"required,category"`
	DueDate   time.Time            `json:"due_date" binding:"required"`
	IsAutoPay bool                 `json:"is_auto_pay"`
	Status    models.BillStatus    `json:"status" binding:"omitempty,bill_status"`
}

// TransactionInput is a transaction in an evaluate request.
type TransactionInput struct {
	ID          string                 `json:"id"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Category    models.Category        `json:"category" binding:"required,category"`
	Amount      int64                  `json:"amount" binding:"min=0"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date" binding:"required"`
}

// BudgetItemInput is a budget line in an evaluate request.
type BudgetItemInput struct {
	ID             string          `json:"id"`
	Category       models.Category `json:"category" binding:"required,category"`
	BudgetedAmount int64           `json:"budgeted_amount" binding:"min=0"`
	Month          string          `json:"month" binding:"required,budget_month"`
}

// GoalInput is a savings goal in an evaluate request.
type GoalInput struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name" binding:"required"`
	TargetAmount        int64               `json:"target_amount" binding:"gt=0"`
	CurrentAmount       int64               `json:"current_amount" binding:"min=0"`
	StartDate           time.Time           `json:"start_date" binding:"required"`
	TargetDate          time.Time           `json:"target_date" binding:"required"`
	MonthlyContribution int64               `json:"monthly_contribution" binding:"min=0"`
	Priority            models.GoalPriority `json:"priority" binding:"omitempty,goal_priority"`
}

// InvestmentInput is a holding in an evaluate request.
type InvestmentInput struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol" binding:"required"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity" binding:"min=0"`
	PurchasePrice int64   `json:"purchase_price" binding:"min=0"`
	CurrentPrice  int64   `json:"current_price" binding:"min=0"`
}

// EvaluateRequest represents the request payload for a stateless evaluation.
type EvaluateRequest struct {
	AsOf         *time.Time         `json:"as_of"`
	Accounts     []AccountInput     `json:"accounts" binding:"dive"`
	Assets       []AssetInput       `json:"assets" binding:"dive"`
	Debts        []DebtInput        `json:"debts" binding:"dive"`
	Bills        []BillInput        `json:"bills" binding:"dive"`
	Transactions []TransactionInput `json:"transactions" binding:"dive"`
	BudgetItems  []BudgetItemInput  `json:"budget_items" binding:"dive"`
	Goals        []GoalInput        `json:"goals" binding:"dive"`
	Investments  []InvestmentInput  `json:"investments" binding:"dive"`
}

// Evaluate handles computing the full report over posted records.
// @Summary     Evaluate records
// @Description Compute the full report over the supplied records without reading or writing the store
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     EvaluateRequest true "Financial records"
// @Success     200     {object} finance.Report
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     401     {object} ErrorResponse "Unauthorized"
// @Failure     422     {object} ErrorResponse "Records failed validation"
// @Router      /evaluate [post]
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = req.AsOf.UTC()
	}

	report, err := h.insightService.Evaluate(req.Snapshot(userID), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Snapshot converts the request into engine records owned by userID.
// Records without an id are given a fresh one and unset optional fields get
// the engine defaults.
func (r EvaluateRequest) Snapshot(userID string) finance.Snapshot {
	var s finance.Snapshot
	for _, in := range r.Accounts {
		s.Accounts = append(s.Accounts, models.Account{
			Base:           base(in.ID),
			UserID:         userID,
			Name:           in.Name,
			Type:           in.Type,
			Balance:        in.Balance,
			Currency:       in.Currency,
			IsActive:       true,
			CreditLimit:    in.CreditLimit,
			MinimumPayment: in.MinimumPayment,
		})
	}
	for _, in := range r.Assets {
		s.Assets = append(s.Assets, models.Asset{
			Base:                  base(in.ID),
			UserID:                userID,
			Name:                  in.Name,
			Type:                  in.Type,
			CurrentValue:          in.CurrentValue,
			IsLiquid:              in.IsLiquid,
			PurchaseDate:          in.PurchaseDate,
			PurchasePrice:         in.PurchasePrice,
			ExpectedLifespanYears: in.ExpectedLifespanYears,
		})
	}
	for _, in := range r.Debts {
		s.Debts = append(s.Debts, models.Debt{
			Base:                      base(in.ID),
			UserID:                    userID,
			Creditor:                  in.Creditor,
			Type:                      in.Type,
			OriginalAmount:            in.OriginalAmount,
			CurrentBalance:            in.CurrentBalance,
			InterestRateAnnualPercent: in.InterestRateAnnualPercent,
			MinimumPayment:            in.MinimumPayment,
			DueDate:                   in.DueDate,
		})
	}
	for _, in := range r.Bills {
		s.Bills = append(s.Bills, models.Bill{
			Base:      base(in.ID),
			UserID:    userID,
			Name:      in.Name,
			Amount:    in.Amount,
			Frequency: in.Frequency,
			Category:  in.Category,
			DueDate:   in.DueDate,
			IsAutoPay: in.IsAutoPay,
			Status:    in.Status,
		})
	}
	for _, in := range r.Transactions {
		s.Transactions = append(s.Transactions, models.Transaction{
			Base:        base(in.ID),
			UserID:      userID,
			Type:        in.Type,
			Category:    in.Category,
			Amount:      in.Amount,
			Description: in.Description,
			Date:        in.Date,
		})
	}
	for _, in := range r.BudgetItems {
		s.BudgetItems = append(s.BudgetItems, models.BudgetItem{
			Base:           base(in.ID),
			UserID:         userID,
			Category:       in.Category,
			BudgetedAmount: in.BudgetedAmount,
			Month:          in.Month,
		})
	}
	for _, in := range r.Goals {
		s.Goals = append(s.Goals, models.Goal{
			Base:                base(in.ID),
			UserID:              userID,
			Name:                in.Name,
			TargetAmount:        in.TargetAmount,
			CurrentAmount:       in.CurrentAmount,
			StartDate:           in.StartDate,
			TargetDate:          in.TargetDate,
			MonthlyContribution: in.MonthlyContribution,
			Priority:            in.Priority,
		})
	}
	for _, in := range r.Investments {
		s.Investments = append(s.Investments, models.Investment{
			Base:          base(in.ID),
			UserID:        userID,
			Symbol:        in.Symbol,
			Name:          in.Name,
			Quantity:      in.Quantity,
			PurchasePrice: in.PurchasePrice,
			CurrentPrice:  in.CurrentPrice,
		})
	}
	return s.WithDefaults()
}

func base(id string) models.Base {
	if id == "" {
		id = uuid.New()
	}
	return models.Base{ID: id}
}
