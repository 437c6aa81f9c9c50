package models

// Category is a spending or income category shared by transactions, bills
// and budget items.
type Category string

const (
	CategoryHousing        Category = "housing"
	CategoryUtilities      Category = "utilities"
	CategoryGroceries      Category = "groceries"
	CategoryTransportation Category = "transportation"
	CategoryHealthcare     Category = "healthcare"
	CategoryInsurance      Category = "insurance"
	CategoryDining         Category = "dining"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryEducation      Category = "education"
	CategorySubscriptions  Category = "subscriptions"
	CategoryDebtPayments   Category = "debt_payments"
	CategorySavings        Category = "savings"
	CategorySalary         Category = "salary"
	CategoryOther          Category = "other"
)

var categoryLabels = map[Category]string{
	CategoryHousing:        "Housing",
	CategoryUtilities:      "Utilities",
	CategoryGroceries:      "Groceries",
	CategoryTransportation: "Transportation",
	CategoryHealthcare:     "Healthcare",
	CategoryInsurance:      "Insurance",
	CategoryDining:         "Dining Out",
	CategoryEntertainment:  "Entertainment",
	CategoryShopping:       "Shopping",
	CategoryEducation:      "Education",
	CategorySubscriptions:  "Subscriptions",
	CategoryDebtPayments:   "Debt Payments",
	CategorySavings:        "Savings",
	CategorySalary:         "Salary",
	CategoryOther:          "Other",
}

// Label returns the display name of the category, "Other" for unknown values.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return "Other"
}

// IsKnown reports whether c is one of the fixed categories.
func (c Category) IsKnown() bool {
	_, ok := categoryLabels[c]
	return ok
}
