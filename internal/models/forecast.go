package models

import (
	"github.com/cashflow-zero/client/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarningLowBalance is set on forecast warnings for days on which the
// projected balance drops below the user's low balance threshold.
const WarningLowBalance = "LOW_BALANCE"

// ForecastData is a balance projection computed by the backend for a number
// of days starting today.
type ForecastData struct {
	ForecastDays          int              `json:"forecastDays"`
	SafeMode              bool             `json:"safeMode"`
	StartingBalance       decimal.Decimal  `json:"startingBalance"`
	ProjectedBalance      decimal.Decimal  `json:"projectedBalance"`
	TotalGuaranteedIncome decimal.Decimal  `json:"totalGuaranteedIncome"`
	TotalLikelyIncome     decimal.Decimal  `json:"totalLikelyIncome"`
	TotalExpenses         decimal.Decimal  `json:"totalExpenses"`
	SafeToSpend           decimal.Decimal  `json:"safeToSpend"`
	DailyBreakdown        []DailyBreakdown `json:"dailyBreakdown"`
	Warnings              []ForecastWarning `json:"warnings"`
	BankHoldSummary       []BankHoldSummary `json:"bankHoldSummary,omitempty"`
}

// DailyBreakdown is the projection for a single day.
type DailyBreakdown struct {
	Date           types.Date           `json:"date"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
	Income         []TransactionSummary `json:"income"`
	Expenses       []TransactionSummary `json:"expenses"`
}

// TransactionSummary is the reduced transaction shape the forecast endpoint
// embeds in daily breakdowns and bank hold summaries.
type TransactionSummary struct {
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Confidence      string          `json:"confidence,omitempty"`
	IsRecurring     bool            `json:"isRecurring"`
	BankAccountID   *uuid.UUID      `json:"bankAccountId,omitempty"`
	BankAccountName string          `json:"bankAccountName,omitempty"`
	TagNames        []string        `json:"tagNames,omitempty"`
	TransactionDate *types.Date     `json:"transactionDate,omitempty"`
}

// ForecastWarning flags a notable day inside the forecast window.
type ForecastWarning struct {
	Date             types.Date      `json:"date"`
	Type             string          `json:"type"`
	Message          string          `json:"message"`
	ProjectedBalance decimal.Decimal `json:"projectedBalance"`
}

// BankHoldSummary is the minimum balance a bank account must retain to cover
// its own upcoming expenses within the forecast window.
type BankHoldSummary struct {
	BankAccountID   uuid.UUID            `json:"bankAccountId"`
	BankAccountName string               `json:"bankAccountName"`
	Color           string               `json:"color,omitempty"`
	MinimumHold     decimal.Decimal      `json:"minimumHold"`
	ExpenseCount    int                  `json:"expenseCount"`
	Transactions    []TransactionSummary `json:"transactions,omitempty"`
}

// HasWarning reports whether the forecast contains a warning of the given type.
func (f ForecastData) HasWarning(warningType string) bool {
	for _, w := range f.Warnings {
		if w.Type == warningType {
			return true
		}
	}

	return false
}
