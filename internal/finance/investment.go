package finance

import "finsight/internal/models"

// HoldingPerformance is the gain or loss of a single holding.
type HoldingPerformance struct {
	InvestmentID string `json:"investment_id"`
	Symbol       string `json:"symbol"`
	CostBasis    int64  `json:"cost_basis"`
	MarketValue  int64  `json:"market_value"`
	GainLoss     int64  `json:"gain_loss"`
	// ReturnPercent is 0 for holdings with no cost basis.
	ReturnPercent float64 `json:"return_percent"`
	// AllocationPercent is the holding's share of portfolio value. It is only
	// set by PortfolioSummary.
	AllocationPercent float64 `json:"allocation_percent"`
}

// Portfolio is the performance of all holdings together.
type Portfolio struct {
	TotalCost     int64                `json:"total_cost"`
	TotalValue    int64                `json:"total_value"`
	TotalGainLoss int64                `json:"total_gain_loss"`
	ReturnPercent float64              `json:"return_percent"`
	Holdings      []HoldingPerformance `json:"holdings"`
}

// Performance computes cost basis, market value and return of a holding.
func Performance(inv models.Investment) (HoldingPerformance, error) {
	if err := ValidateInvestment(inv); err != nil {
		return HoldingPerformance{}, err
	}
	hp := HoldingPerformance{
		InvestmentID: inv.ID,
		Symbol:       inv.Symbol,
		CostBasis:    lineValue(inv.Quantity, inv.PurchasePrice),
		MarketValue:  lineValue(inv.Quantity, inv.CurrentPrice),
	}
	hp.GainLoss = hp.MarketValue - hp.CostBasis
	hp.ReturnPercent = returnPercent(hp.GainLoss, hp.CostBasis)
	return hp, nil
}

// PortfolioSummary adds up every holding. The portfolio return is
// TotalGainLoss/TotalCost with the same zero-cost guard as Performance.
func PortfolioSummary(investments []models.Investment) (Portfolio, error) {
	p := Portfolio{Holdings: make([]HoldingPerformance, 0, len(investments))}
	for _, inv := range investments {
		hp, err := Performance(inv)
		if err != nil {
			return Portfolio{}, err
		}
		p.TotalCost += hp.CostBasis
		p.TotalValue += hp.MarketValue
		p.TotalGainLoss += hp.GainLoss
		p.Holdings = append(p.Holdings, hp)
	}
	p.ReturnPercent = returnPercent(p.TotalGainLoss, p.TotalCost)
	if p.TotalValue > 0 {
		for i := range p.Holdings {
			p.Holdings[i].AllocationPercent = percentOf(p.Holdings[i].MarketValue, p.TotalValue)
		}
	}
	return p, nil
}

func returnPercent(gainLoss, costBasis int64) float64 {
	if costBasis <= 0 {
		return 0
	}
	return percentOf(gainLoss, costBasis)
}
