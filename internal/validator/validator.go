// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/Rhymond/go-money"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finsight/internal/finance"
	"finsight/internal/models"
)

var budgetMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = RegisterOn(v)
	}
}

// RegisterOn registers the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	validations := map[string]validator.Func{
		"iso4217":          validateISO4217,
		"account_type":     oneOf(models.AccountTypeChecking, models.AccountTypeSavings, models.AccountTypeCreditCard, models.AccountTypeInvestment, models.AccountTypeRetirement),
		"asset_type":       oneOf(models.AssetTypeRealEstate, models.AssetTypeVehicle, models.AssetTypeElectronics, models.AssetTypeJewelry, models.AssetTypeCashEquivalent, models.AssetTypeCollectible, models.AssetTypeOther),
		"debt_type":        oneOf(models.DebtTypeMortgage, models.DebtTypeAutoLoan, models.DebtTypeStudentLoan, models.DebtTypePersonalLoan, models.DebtTypeMedical, models.DebtTypeOther),
		"bill_frequency":   oneOf(models.BillFrequencyWeekly, models.BillFrequencyBiweekly, models.BillFrequencyMonthly, models.BillFrequencyQuarterly, models.BillFrequencyYearly, models.BillFrequencyOneTime),
		"bill_status":      oneOf(models.BillStatusActive, models.BillStatusPaid, models.BillStatusOverdue),
		"transaction_type": oneOf(models.TransactionTypeIncome, models.TransactionTypeExpense, models.TransactionTypeTransfer),
		"goal_priority":    oneOf(models.GoalPriorityHigh, models.GoalPriorityMedium, models.GoalPriorityLow),
		"payoff_strategy":  oneOf(finance.StrategySnowball, finance.StrategyAvalanche),
		"category":         validateCategory,
		"budget_month":     validateBudgetMonth,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// validateISO4217 accepts codes present in go-money's currency table.
func validateISO4217(fl validator.FieldLevel) bool {
	return money.GetCurrency(fl.Field().String()) != nil
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).IsKnown()
}

func validateBudgetMonth(fl validator.FieldLevel) bool {
	return budgetMonthRegex.MatchString(fl.Field().String())
}

func oneOf[T ~string](values ...T) validator.Func {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[string(v)] = true
	}
	return func(fl validator.FieldLevel) bool {
		return allowed[fl.Field().String()]
	}
}
