package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/google/uuid"
)

// Transactions lists all transactions of the user.
func (c *Client) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions", nil, nil, &transactions)
	return transactions, err
}

// TransactionsRange lists the transactions dated inside [start, end]. The
// filtering happens on the backend, this shapes the request instead of
// slicing a full fetch locally.
func (c *Client) TransactionsRange(ctx context.Context, start, end types.Date) ([]models.Transaction, error) {
	query := url.Values{}
	query.Set("startDate", start.String())
	query.Set("endDate", end.String())

	var transactions []models.Transaction
	err := c.do(ctx, http.MethodGet, "/transactions", query, nil, &transactions)
	return transactions, err
}

// CreateTransaction creates a transaction.
func (c *Client) CreateTransaction(ctx context.Context, create models.TransactionCreate) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions", nil, create, &transaction)
	return transaction, err
}

// UpdateTransaction updates a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, update models.TransactionCreate) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodPut, "/transactions/"+id.String(), nil, update, &transaction)
	return transaction, err
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+id.String(), nil, nil, nil)
}

// MarkIncomeReceived transitions an income transaction to RECEIVED.
func (c *Client) MarkIncomeReceived(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/transactions/"+id.String()+"/received", nil, nil, nil)
}

// MarkExpensePaid transitions an expense transaction to PAID.
func (c *Client) MarkExpensePaid(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/transactions/"+id.String()+"/paid", nil, nil, nil)
}

// SkipExpense transitions an expense transaction to SKIPPED.
func (c *Client) SkipExpense(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/transactions/"+id.String()+"/skip", nil, nil, nil)
}

// SetIncomeConfidence changes the confidence of an income transaction.
func (c *Client) SetIncomeConfidence(ctx context.Context, id uuid.UUID, confidence models.IncomeConfidence) error {
	body := struct {
		Confidence models.IncomeConfidence `json:"confidence"`
	}{Confidence: confidence}

	return c.do(ctx, http.MethodPost, "/transactions/"+id.String()+"/confidence", nil, body, nil)
}
