package ynab

import (
	"github.com/hirosato/ynab-mcp/internal/domain/money"
)

// Reserved names used by the budgeting service.
const (
	InternalMasterCategoryGroup = "Internal Master Category"
	HiddenCategoriesGroup       = "Hidden Categories"
	InflowCategoryName          = "Inflow: Ready to Assign"
	UncategorizedLabel          = "Uncategorized"
)

// IsInternalGroup reports whether a category group name is reserved.
func IsInternalGroup(name string) bool {
	return name == InternalMasterCategoryGroup || name == HiddenCategoriesGroup
}

type AccountType string

const (
	AccountTypeChecking       AccountType = "checking"
	AccountTypeSavings        AccountType = "savings"
	AccountTypeCreditCard     AccountType = "creditCard"
	AccountTypeCash           AccountType = "cash"
	AccountTypeLineOfCredit   AccountType = "lineOfCredit"
	AccountTypeOtherAsset     AccountType = "otherAsset"
	AccountTypeOtherLiability AccountType = "otherLiability"
	AccountTypeMortgage       AccountType = "mortgage"
	AccountTypeAutoLoan       AccountType = "autoLoan"
	AccountTypeStudentLoan    AccountType = "studentLoan"
	AccountTypePersonalLoan   AccountType = "personalLoan"
	AccountTypeMedicalDebt    AccountType = "medicalDebt"
	AccountTypeOtherDebt      AccountType = "otherDebt"
)

// AccountTypes lists every account type accepted on creation.
var AccountTypes = []AccountType{
	AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard, AccountTypeCash,
	AccountTypeLineOfCredit, AccountTypeOtherAsset, AccountTypeOtherLiability,
	AccountTypeMortgage, AccountTypeAutoLoan, AccountTypeStudentLoan,
	AccountTypePersonalLoan, AccountTypeMedicalDebt, AccountTypeOtherDebt,
}

type ClearedStatus string

const (
	Cleared    ClearedStatus = "cleared"
	Uncleared  ClearedStatus = "uncleared"
	Reconciled ClearedStatus = "reconciled"
)

type FlagColor string

const (
	FlagRed    FlagColor = "red"
	FlagOrange FlagColor = "orange"
	FlagYellow FlagColor = "yellow"
	FlagGreen  FlagColor = "green"
	FlagBlue   FlagColor = "blue"
	FlagPurple FlagColor = "purple"
)

var FlagColors = []FlagColor{FlagRed, FlagOrange, FlagYellow, FlagGreen, FlagBlue, FlagPurple}

type Frequency string

const (
	FrequencyNever           Frequency = "never"
	FrequencyDaily           Frequency = "daily"
	FrequencyWeekly          Frequency = "weekly"
	FrequencyEveryOtherWeek  Frequency = "everyOtherWeek"
	FrequencyTwiceAMonth     Frequency = "twiceAMonth"
	FrequencyEvery4Weeks     Frequency = "every4Weeks"
	FrequencyMonthly         Frequency = "monthly"
	FrequencyEveryOtherMonth Frequency = "everyOtherMonth"
	FrequencyEvery3Months    Frequency = "every3Months"
	FrequencyEvery4Months    Frequency = "every4Months"
	FrequencyTwiceAYear      Frequency = "twiceAYear"
	FrequencyYearly          Frequency = "yearly"
)

var Frequencies = []Frequency{
	FrequencyNever, FrequencyDaily, FrequencyWeekly, FrequencyEveryOtherWeek,
	FrequencyTwiceAMonth, FrequencyEvery4Weeks, FrequencyMonthly,
	FrequencyEveryOtherMonth, FrequencyEvery3Months, FrequencyEvery4Months,
	FrequencyTwiceAYear, FrequencyYearly,
}

// GoalType is the kind of target attached to a category.
type GoalType string

const (
	GoalTargetBalance       GoalType = "TB"
	GoalTargetBalanceByDate GoalType = "TBD"
	GoalMonthlyFunding      GoalType = "MF"
	GoalNeed                GoalType = "NEED"
	GoalDebt                GoalType = "DEBT"
)

// Label returns a readable name for the goal type.
func (g GoalType) Label() string {
	switch g {
	case GoalTargetBalance:
		return "Target Balance"
	case GoalTargetBalanceByDate:
		return "Target Balance by Date"
	case GoalMonthlyFunding:
		return "Monthly Funding"
	case GoalNeed:
		return "Needed for Spending"
	case GoalDebt:
		return "Debt Payment"
	default:
		return string(g)
	}
}

type Budget struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LastModifiedOn string `json:"last_modified_on,omitempty"`
	FirstMonth     string `json:"first_month,omitempty"`
	LastMonth      string `json:"last_month,omitempty"`
}

type Account struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Type             AccountType      `json:"type"`
	OnBudget         bool             `json:"on_budget"`
	Closed           bool             `json:"closed"`
	Note             *string          `json:"note,omitempty"`
	Balance          money.Milliunits `json:"balance"`
	ClearedBalance   money.Milliunits `json:"cleared_balance"`
	UnclearedBalance money.Milliunits `json:"uncleared_balance"`
	Deleted          bool             `json:"deleted"`
}

type CategoryGroup struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Hidden     bool       `json:"hidden"`
	Deleted    bool       `json:"deleted"`
	Categories []Category `json:"categories"`
}

type Category struct {
	ID                     string            `json:"id"`
	CategoryGroupID        string            `json:"category_group_id"`
	CategoryGroupName      string            `json:"category_group_name,omitempty"`
	Name                   string            `json:"name"`
	Hidden                 bool              `json:"hidden"`
	Note                   *string           `json:"note,omitempty"`
	Budgeted               money.Milliunits  `json:"budgeted"`
	Activity               money.Milliunits  `json:"activity"`
	Balance                money.Milliunits  `json:"balance"`
	GoalType               *GoalType         `json:"goal_type,omitempty"`
	GoalTarget             *money.Milliunits `json:"goal_target,omitempty"`
	GoalTargetDate         *string           `json:"goal_target_date,omitempty"`
	GoalPercentageComplete *int              `json:"goal_percentage_complete,omitempty"`
	GoalUnderFunded        *money.Milliunits `json:"goal_under_funded,omitempty"`
	Deleted                bool              `json:"deleted"`
}

// Visible reports whether the category is neither hidden nor deleted.
func (c Category) Visible() bool {
	return !c.Hidden && !c.Deleted
}

type SubTransaction struct {
	ID            string           `json:"id,omitempty"`
	TransactionID string           `json:"transaction_id,omitempty"`
	Amount        money.Milliunits `json:"amount"`
	Memo          *string          `json:"memo,omitempty"`
	PayeeID       *string          `json:"payee_id,omitempty"`
	PayeeName     *string          `json:"payee_name,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	CategoryName  *string          `json:"category_name,omitempty"`
	Deleted       bool             `json:"deleted"`
}

type Transaction struct {
	ID              string           `json:"id"`
	Date            string           `json:"date"`
	Amount          money.Milliunits `json:"amount"`
	Memo            *string          `json:"memo"`
	Cleared         ClearedStatus    `json:"cleared"`
	Approved        bool             `json:"approved"`
	FlagColor       *FlagColor       `json:"flag_color"`
	AccountID       string           `json:"account_id"`
	AccountName     string           `json:"account_name"`
	PayeeID         *string          `json:"payee_id"`
	PayeeName       *string          `json:"payee_name"`
	CategoryID      *string          `json:"category_id"`
	CategoryName    *string          `json:"category_name"`
	TransferAccount *string          `json:"transfer_account_id,omitempty"`
	ImportID        *string          `json:"import_id,omitempty"`
	Subtransactions []SubTransaction `json:"subtransactions"`
	Deleted         bool             `json:"deleted"`
}

// Uncategorized reports whether a live transaction has no category.
func (t Transaction) Uncategorized() bool {
	return !t.Deleted && t.CategoryID == nil
}

// Payee returns the payee name or an empty string.
func (t Transaction) Payee() string {
	return deref(t.PayeeName)
}

// Category returns the category name or an empty string.
func (t Transaction) Category() string {
	return deref(t.CategoryName)
}

// MemoText returns the memo or an empty string.
func (t Transaction) MemoText() string {
	return deref(t.Memo)
}

type ScheduledTransaction struct {
	ID           string           `json:"id"`
	DateFirst    string           `json:"date_first"`
	DateNext     string           `json:"date_next"`
	Frequency    Frequency        `json:"frequency"`
	Amount       money.Milliunits `json:"amount"`
	Memo         *string          `json:"memo"`
	FlagColor    *FlagColor       `json:"flag_color"`
	AccountID    string           `json:"account_id"`
	AccountName  string           `json:"account_name"`
	PayeeID      *string          `json:"payee_id"`
	PayeeName    *string          `json:"payee_name"`
	CategoryID   *string          `json:"category_id"`
	CategoryName *string          `json:"category_name"`
	Deleted      bool             `json:"deleted"`
}

func (s ScheduledTransaction) Payee() string {
	return deref(s.PayeeName)
}

func (s ScheduledTransaction) Category() string {
	return deref(s.CategoryName)
}

type Payee struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	TransferAccountID *string `json:"transfer_account_id,omitempty"`
	Deleted           bool    `json:"deleted"`
}

type PayeeLocation struct {
	ID        string `json:"id"`
	PayeeID   string `json:"payee_id"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Deleted   bool   `json:"deleted"`
}

type MonthSummary struct {
	Month        string           `json:"month"`
	Note         *string          `json:"note,omitempty"`
	Income       money.Milliunits `json:"income"`
	Budgeted     money.Milliunits `json:"budgeted"`
	Activity     money.Milliunits `json:"activity"`
	ToBeBudgeted money.Milliunits `json:"to_be_budgeted"`
	AgeOfMoney   *int             `json:"age_of_money,omitempty"`
	Deleted      bool             `json:"deleted"`
}

// MonthDetail is a month with its per-category figures.
type MonthDetail struct {
	MonthSummary
	Categories []Category `json:"categories"`
}

type DateFormat struct {
	Format string `json:"format"`
}

type CurrencyFormat struct {
	ISOCode          string `json:"iso_code"`
	ExampleFormat    string `json:"example_format"`
	DecimalDigits    int    `json:"decimal_digits"`
	DecimalSeparator string `json:"decimal_separator"`
	SymbolFirst      bool   `json:"symbol_first"`
	GroupSeparator   string `json:"group_separator"`
	CurrencySymbol   string `json:"currency_symbol"`
	DisplaySymbol    bool   `json:"display_symbol"`
}

type BudgetSettings struct {
	DateFormat     DateFormat     `json:"date_format"`
	CurrencyFormat CurrencyFormat `json:"currency_format"`
}

type User struct {
	ID string `json:"id"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
