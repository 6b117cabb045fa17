package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency is an exchange rate bearing unit. Exactly one currency is the base
// currency; all other rates are expressed relative to it and the base rate is
// fixed at 1.
type Currency struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	IsBaseCurrency bool            `json:"isBaseCurrency"`
}

// CurrencyCreate is the request body for creating and updating currencies.
type CurrencyCreate struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// BankAccount is a named holding location for funds.
type BankAccount struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BankName  string    `json:"bankName,omitempty"`
	Currency  string    `json:"currency"`
	IsDefault bool      `json:"isDefault"`
	Color     string    `json:"color,omitempty"`
}

// BankAccountCreate is the request body for creating and updating bank accounts.
type BankAccountCreate struct {
	Name      string `json:"name"`
	BankName  string `json:"bankName,omitempty"`
	Currency  string `json:"currency"`
	IsDefault bool   `json:"isDefault"`
	Color     string `json:"color,omitempty"`
}

// Tag is a label applied to transactions for grouping.
type Tag struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color,omitempty"`
	Icon  string    `json:"icon,omitempty"`
}

// TagCreate is the request body for creating and updating tags.
type TagCreate struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Reminder is an upcoming payment the user asked to be notified about.
type Reminder struct {
	RuleID          uuid.UUID       `json:"ruleId"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	DueDate         string          `json:"dueDate"`
	DaysUntilDue    int             `json:"daysUntilDue"`
	BankAccountName string          `json:"bankAccountName,omitempty"`
	Message         string          `json:"message"`
}

// ImportSummary is the backend's result for a CSV bulk import.
type ImportSummary struct {
	TotalProcessed int `json:"totalProcessed"`
	ImportedCount  int `json:"importedCount"`
	SkippedCount   int `json:"skippedCount"`
	ErrorCount     int `json:"errorCount"`
}
