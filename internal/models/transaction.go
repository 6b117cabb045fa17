package models

import (
	"errors"

	"github.com/cashflow-zero/client/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// IncomeConfidence states how certain an income is to arrive.
type IncomeConfidence string

const (
	ConfidenceGuaranteed IncomeConfidence = "GUARANTEED"
	ConfidenceLikely     IncomeConfidence = "LIKELY"
)

// IncomeStatus is the lifecycle state of an income transaction.
type IncomeStatus string

const (
	IncomePending  IncomeStatus = "PENDING"
	IncomeReceived IncomeStatus = "RECEIVED"
	IncomeCanceled IncomeStatus = "CANCELLED"
)

// ExpenseStatus is the lifecycle state of an expense transaction.
type ExpenseStatus string

const (
	ExpenseUpcoming ExpenseStatus = "UPCOMING"
	ExpensePaid     ExpenseStatus = "PAID"
	ExpenseSkipped  ExpenseStatus = "SKIPPED"
)

// Frequency is the recurrence interval of a recurring transaction or rule.
type Frequency string

const (
	FrequencyDaily      Frequency = "DAILY"
	FrequencyWeekly     Frequency = "WEEKLY"
	FrequencyBiweekly   Frequency = "BIWEEKLY"
	FrequencyMonthly    Frequency = "MONTHLY"
	FrequencyQuarterly  Frequency = "QUARTERLY"
	FrequencyHalfYearly Frequency = "HALF_YEARLY"
	FrequencyYearly     Frequency = "YEARLY"
)

var ErrUnknownTransactionType = errors.New("the transaction type must be INCOME or EXPENSE")

// Transaction is a single dated money movement.
//
// The backend stores income and expense transactions in one collection. Which
// of the optional field groups is meaningful depends on Type; use the Income
// and Expense accessors instead of reading those fields directly.
type Transaction struct {
	ID                   uuid.UUID        `json:"id"`
	Type                 TransactionType  `json:"type"`
	Amount               decimal.Decimal  `json:"amount"`
	CurrencyCode         string           `json:"currencyCode"`
	AmountInBaseCurrency decimal.Decimal  `json:"amountInBaseCurrency"`
	Description          string           `json:"description,omitempty"`
	TransactionDate      types.Date       `json:"transactionDate"`
	ActualDate           *types.Date      `json:"actualDate,omitempty"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate,omitempty"`
	OriginalAmount       *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrencyCode string           `json:"originalCurrencyCode,omitempty"`

	// Income fields
	Confidence   IncomeConfidence `json:"confidence,omitempty"`
	IncomeStatus IncomeStatus     `json:"incomeStatus,omitempty"`

	// Expense fields
	ExpenseStatus ExpenseStatus `json:"expenseStatus,omitempty"`
	IsRecurring   bool          `json:"isRecurring,omitempty"`
	Frequency     Frequency     `json:"frequency,omitempty"`
	ReminderDays  int           `json:"reminderDays,omitempty"`
	BankAccountID *uuid.UUID    `json:"bankAccountId,omitempty"`

	TagIDs []uuid.UUID `json:"tagIds,omitempty"`
}

// IncomeDetails are the fields that are only meaningful for income transactions.
type IncomeDetails struct {
	Confidence IncomeConfidence
	Status     IncomeStatus
}

// ExpenseDetails are the fields that are only meaningful for expense transactions.
type ExpenseDetails struct {
	Status        ExpenseStatus
	IsRecurring   bool
	Frequency     Frequency
	ReminderDays  int
	BankAccountID *uuid.UUID
}

// Income returns the income specific fields. The second return value is
// false for transactions that are not income.
func (t Transaction) Income() (IncomeDetails, bool) {
	if t.Type != TypeIncome {
		return IncomeDetails{}, false
	}

	return IncomeDetails{
		Confidence: t.Confidence,
		Status:     t.IncomeStatus,
	}, true
}

// Expense returns the expense specific fields. The second return value is
// false for transactions that are not expenses.
func (t Transaction) Expense() (ExpenseDetails, bool) {
	if t.Type != TypeExpense {
		return ExpenseDetails{}, false
	}

	return ExpenseDetails{
		Status:        t.ExpenseStatus,
		IsRecurring:   t.IsRecurring,
		Frequency:     t.Frequency,
		ReminderDays:  t.ReminderDays,
		BankAccountID: t.BankAccountID,
	}, true
}

// Status returns the lifecycle status for the transaction's type.
func (t Transaction) Status() string {
	if t.Type == TypeIncome {
		return string(t.IncomeStatus)
	}

	return string(t.ExpenseStatus)
}

// TransactionCreate is the request body for creating and updating transactions.
type TransactionCreate struct {
	Type                 TransactionType  `json:"type"`
	Amount               decimal.Decimal  `json:"amount"`
	CurrencyCode         string           `json:"currencyCode,omitempty"`
	Description          string           `json:"description,omitempty"`
	TransactionDate      types.Date       `json:"transactionDate"`
	Confidence           IncomeConfidence `json:"confidence,omitempty"`
	IncomeStatus         IncomeStatus     `json:"incomeStatus,omitempty"`
	ExpenseStatus        ExpenseStatus    `json:"expenseStatus,omitempty"`
	IsRecurring          bool             `json:"isRecurring,omitempty"`
	IsEndOfMonth         bool             `json:"isEndOfMonth,omitempty"`
	Frequency            Frequency        `json:"frequency,omitempty"`
	ReminderDays         int              `json:"reminderDays,omitempty"`
	BankAccountID        *uuid.UUID       `json:"bankAccountId,omitempty"`
	TagIDs               []uuid.UUID      `json:"tagIds,omitempty"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate,omitempty"`
	OriginalAmount       *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrencyCode string           `json:"originalCurrencyCode,omitempty"`
}
