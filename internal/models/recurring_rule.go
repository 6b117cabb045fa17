package models

import (
	"errors"

	"github.com/cashflow-zero/client/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrRuleExpired         = errors.New("the rule is older than 2 years and has expired, it can no longer be edited or run")
	ErrExchangeRateInvalid = errors.New("the exchange rate must be greater than zero")
)

// expiryYears is the age at which a rule becomes read-only.
const expiryYears = 2

// RecurringRule is a template from which the backend generates future
// transactions.
type RecurringRule struct {
	ID                   uuid.UUID        `json:"id"`
	Type                 TransactionType  `json:"type"`
	Amount               decimal.Decimal  `json:"amount"`
	CurrencyCode         string           `json:"currencyCode"`
	Description          string           `json:"description,omitempty"`
	Frequency            Frequency        `json:"frequency"`
	StartDate            types.Date       `json:"startDate"`
	EndDate              *types.Date      `json:"endDate,omitempty"`
	LastRunDate          *types.Date      `json:"lastRunDate,omitempty"`
	ReminderDays         int              `json:"reminderDays,omitempty"`
	Active               bool             `json:"active"`
	IsEndOfMonth         bool             `json:"isEndOfMonth,omitempty"`
	Confidence           IncomeConfidence `json:"confidence,omitempty"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate,omitempty"`
	OriginalAmount       *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrencyCode string           `json:"originalCurrencyCode,omitempty"`
	BankAccountID        *uuid.UUID       `json:"bankAccountId,omitempty"`
	TagIDs               []uuid.UUID      `json:"tagIds,omitempty"`
}

// IsExpired reports whether the rule's start date lies more than two years
// before the reference date. Expired rules are read-only: they can be listed
// and deleted, but not edited or (re)activated.
func (r RecurringRule) IsExpired(today types.Date) bool {
	return r.StartDate.Before(today.AddYears(-expiryYears))
}

// RecurringRuleCreate is the request body for creating and updating rules.
type RecurringRuleCreate struct {
	Type                 TransactionType  `json:"type"`
	Amount               decimal.Decimal  `json:"amount"`
	CurrencyCode         string           `json:"currencyCode"`
	Description          string           `json:"description"`
	Frequency            Frequency        `json:"frequency"`
	StartDate            types.Date       `json:"startDate"`
	ReminderDays         int              `json:"reminderDays,omitempty"`
	Active               bool             `json:"active"`
	IsEndOfMonth         bool             `json:"isEndOfMonth,omitempty"`
	Confidence           IncomeConfidence `json:"confidence,omitempty"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate,omitempty"`
	OriginalAmount       *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrencyCode string           `json:"originalCurrencyCode,omitempty"`
	BankAccountID        *uuid.UUID       `json:"bankAccountId,omitempty"`
	TagIDs               []uuid.UUID      `json:"tagIds,omitempty"`
}
