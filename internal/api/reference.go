package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/google/uuid"
)

// BankAccounts lists all bank accounts of the user.
func (c *Client) BankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := c.do(ctx, http.MethodGet, "/bank-accounts", nil, nil, &accounts)
	return accounts, err
}

// CreateBankAccount creates a bank account.
func (c *Client) CreateBankAccount(ctx context.Context, create models.BankAccountCreate) (models.BankAccount, error) {
	var account models.BankAccount
	err := c.do(ctx, http.MethodPost, "/bank-accounts", nil, create, &account)
	return account, err
}

// UpdateBankAccount updates a bank account.
func (c *Client) UpdateBankAccount(ctx context.Context, id uuid.UUID, update models.BankAccountCreate) (models.BankAccount, error) {
	var account models.BankAccount
	err := c.do(ctx, http.MethodPut, "/bank-accounts/"+id.String(), nil, update, &account)
	return account, err
}

// DeleteBankAccount deletes a bank account.
func (c *Client) DeleteBankAccount(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/bank-accounts/"+id.String(), nil, nil, nil)
}

// Currencies lists all currencies of the user.
func (c *Client) Currencies(ctx context.Context) ([]models.Currency, error) {
	var currencies []models.Currency
	err := c.do(ctx, http.MethodGet, "/currencies", nil, nil, &currencies)
	return currencies, err
}

// CreateCurrency creates a currency.
func (c *Client) CreateCurrency(ctx context.Context, create models.CurrencyCreate) (models.Currency, error) {
	var currency models.Currency
	err := c.do(ctx, http.MethodPost, "/currencies", nil, create, &currency)
	return currency, err
}

// UpdateCurrency updates a currency. The base currency's exchange rate is
// fixed at 1, the backend rejects attempts to change it.
func (c *Client) UpdateCurrency(ctx context.Context, id uuid.UUID, update models.CurrencyCreate) (models.Currency, error) {
	var currency models.Currency
	err := c.do(ctx, http.MethodPut, "/currencies/"+id.String(), nil, update, &currency)
	return currency, err
}

// DeleteCurrency deletes a currency.
func (c *Client) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/currencies/"+id.String(), nil, nil, nil)
}

// SetBaseCurrency makes the currency the base all exchange rates are
// expressed against.
func (c *Client) SetBaseCurrency(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/currencies/"+id.String()+"/base", nil, nil, nil)
}

// Tags lists all tags of the user.
func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &tags)
	return tags, err
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, create models.TagCreate) (models.Tag, error) {
	var tag models.Tag
	err := c.do(ctx, http.MethodPost, "/tags", nil, create, &tag)
	return tag, err
}

// UpdateTag updates a tag.
func (c *Client) UpdateTag(ctx context.Context, id uuid.UUID, update models.TagCreate) (models.Tag, error) {
	var tag models.Tag
	err := c.do(ctx, http.MethodPut, "/tags/"+id.String(), nil, update, &tag)
	return tag, err
}

// DeleteTag deletes a tag.
func (c *Client) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/tags/"+id.String(), nil, nil, nil)
}

// Reminders lists the payments due within the next days.
func (c *Client) Reminders(ctx context.Context, days int) ([]models.Reminder, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var reminders []models.Reminder
	err := c.do(ctx, http.MethodGet, "/reminders", query, nil, &reminders)
	return reminders, err
}
