// Package analysis turns snapshot records into plans and reports. Nothing
// here performs I/O; amounts in results are major units rounded to cents.
package analysis

// AnomalyItem is a category spending well above its average this month.
type AnomalyItem struct {
	CategoryName    string
	CurrentAmount   float64
	AverageAmount   float64
	PctAboveAverage float64
}

// SpendingTrendResult compares per-category outflows month over month.
type SpendingTrendResult struct {
	Months         []string // oldest first, "YYYY-MM"
	MonthlyTotals  map[string]map[string]float64
	Averages       map[string]float64
	Anomalies      []AnomalyItem
	CategoryFilter string
	NumMonths      int
}

// CategoryBalance is a category with a signed available amount.
type CategoryBalance struct {
	Name       string
	CategoryID string
	Amount     float64
}

// MoveSuggestion is a proposed transfer between categories.
type MoveSuggestion struct {
	FromCategory   string
	FromCategoryID string
	ToCategory     string
	ToCategoryID   string
	Amount         float64
}

type OverspendingResult struct {
	Overspent      []CategoryBalance
	Sources        []CategoryBalance
	Suggestions    []MoveSuggestion
	TotalOverspent float64
}

type AffordabilityResult struct {
	CanAfford      bool
	CategoryName   string
	Available      float64
	Requested      float64
	RemainingAfter float64
	Budget         float64
	UtilizationPct float64
}

// SplitItem is one line of a split purchase, amount positive.
type SplitItem struct {
	CategoryName string  `json:"category_name" validate:"required"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	Memo         string  `json:"memo,omitempty"`
}

type BudgetAssignment struct {
	CategoryID       string
	CategoryName     string
	CurrentBudgeted  float64
	ProposedBudgeted float64
}

type CreditCardInfo struct {
	AccountName         string
	AccountID           string
	Balance             float64
	PaymentCategoryName string
	PaymentAvailable    float64
	Discrepancy         float64
}

type CreditCardAnalysis struct {
	Cards                 []CreditCardInfo
	TotalOwed             float64
	TotalPaymentAvailable float64
}

type SpendingForecast struct {
	CategoryName       string
	Budget             float64
	SpentSoFar         float64
	DaysElapsed        int
	DaysRemaining      int
	DailyRate          float64
	ProjectedTotal     float64
	WillStayInBudget   bool
	ProjectedRemaining float64
}

// FieldChange records one field an update will modify.
type FieldChange struct {
	FieldName string
	OldValue  string
	NewValue  string
}

// CategoryTargetResult describes a goal target change.
type CategoryTargetResult struct {
	CategoryName       string
	Action             string // set, updated or removed
	OldTarget          *float64
	NewTarget          *float64
	OldTargetDate      *string
	NewTargetDate      *string
	GoalType           string
	PercentageComplete *int
	UnderFunded        *float64
}
