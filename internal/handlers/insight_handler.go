package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/services"
)

// InsightHandler serves the computed views over the authenticated user's records.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GetNetWorth handles the net worth breakdown.
// @Summary     Get net worth
// @Description Aggregate accounts, assets, holdings and debts into a balance sheet
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query    string false "Valuation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200   {object} finance.NetWorth
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Failure     422   {object} ErrorResponse "Records failed validation"
// @Router      /insights/net-worth [get]
func (h *InsightHandler) GetNetWorth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.NetWorth(userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetCashFlow handles the monthly income and expense summary.
// @Summary     Get cash flow
// @Description Income against expenses for a calendar month; transfers are excluded
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       month query    string false "Month (YYYY-MM, default current)"
// @Success     200   {object} finance.CashFlowSummary
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Router      /insights/cash-flow [get]
func (h *InsightHandler) GetCashFlow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parseMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.CashFlow(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBudget handles the budget variance report.
// @Summary     Get budget variance
// @Description Budgeted against actual spending per category for a month
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       month query    string false "Month (YYYY-MM, default current)"
// @Success     200   {object} finance.BudgetReport
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Failure     422   {object} ErrorResponse "Records failed validation"
// @Router      /insights/budget [get]
func (h *InsightHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parseMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.Budget(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetGoals handles progress for every goal of the user.
// @Summary     Get goal progress
// @Description Progress, projection and status of every savings goal
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query    string false "Evaluation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200   {array}  finance.GoalProgress
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Failure     422   {object} ErrorResponse "Records failed validation"
// @Router      /insights/goals [get]
func (h *InsightHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.Goals(userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": result})
}

// GetGoalProgress handles progress for a single goal.
// @Summary     Get progress of a goal
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id    path     string true  "Goal ID"
// @Param       as_of query    string false "Evaluation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200   {object} finance.GoalProgress
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Failure     404   {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [get]
func (h *InsightHandler) GetGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.GoalProgress(userID, goalID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDebts handles per-debt payoff estimates and ratios.
// @Summary     Get debt analysis
// @Description Payoff estimates ordered by strategy, totals and debt-to-income ratio
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       strategy query    string false "snowball or avalanche"
// @Param       as_of    query    string false "Evaluation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200      {object} finance.DebtReport
// @Failure     400      {object} ErrorResponse "Invalid input"
// @Failure     401      {object} ErrorResponse "Unauthorized"
// @Failure     422      {object} ErrorResponse "Records failed validation"
// @Router      /insights/debts [get]
func (h *InsightHandler) GetDebts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	strategy, err := parseStrategy(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.Debts(userID, strategy, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPayoffPlan handles the month-by-month payoff simulation.
// @Summary     Get debt payoff plan
// @Description Simulate paying all debts with minimums plus an extra monthly amount
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       strategy query    string false "snowball or avalanche"
// @Param       extra    query    int    false "Extra monthly payment in cents"
// @Param       as_of    query    string false "Plan start (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200      {object} finance.PayoffPlan
// @Failure     400      {object} ErrorResponse "Invalid input"
// @Failure     401      {object} ErrorResponse "Unauthorized"
// @Failure     422      {object} ErrorResponse "Records failed validation"
// @Router      /insights/debts/plan [get]
func (h *InsightHandler) GetPayoffPlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	strategy, err := parseStrategy(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	extra, err := parseAmount(c, "extra")
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.PayoffPlan(userID, strategy, extra, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPortfolio handles the investment performance summary.
// @Summary     Get portfolio
// @Description Market value, cost basis, gains and allocation of holdings
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} finance.Portfolio
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Records failed validation"
// @Router      /insights/portfolio [get]
func (h *InsightHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.Portfolio(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAssets handles depreciated values of every asset.
// @Summary     Get asset valuations
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query    string false "Valuation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200   {array}  finance.AssetValuation
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Router      /insights/assets [get]
func (h *InsightHandler) GetAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.AssetValuations(userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": result})
}

// GetAsset handles the depreciated value of one asset.
// @Summary     Get asset valuation
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       id    path     string true  "Asset ID"
// @Param       as_of query    string false "Valuation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200   {object} finance.AssetValuation
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Failure     404   {object} ErrorResponse "Asset not found"
// @Router      /insights/assets/{id} [get]
func (h *InsightHandler) GetAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.AssetValuation(userID, assetID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBills handles the recurring bill summary.
// @Summary     Get bills
// @Description Monthly equivalent of active bills and bills falling due soon
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query    string false "Reference date (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200   {object} finance.BillReport
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Router      /insights/bills [get]
func (h *InsightHandler) GetBills(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.Bills(userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetReport handles the combined report.
// @Summary     Get full report
// @Description Every insight section computed over one snapshot
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query    string false "Evaluation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success     200   {object} finance.Report
// @Failure     400   {object} ErrorResponse "Invalid input"
// @Failure     401   {object} ErrorResponse "Unauthorized"
// @Failure     422   {object} ErrorResponse "Records failed validation"
// @Router      /insights/report [get]
func (h *InsightHandler) GetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.insightService.Report(userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
