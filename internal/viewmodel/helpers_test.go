package viewmodel_test

import (
	"context"
	"sync"

	"github.com/cashflow-zero/client/internal/api"
	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/google/uuid"
)

// fakeAPI implements the view model client interfaces in memory.
type fakeAPI struct {
	mu sync.Mutex

	transactions []models.Transaction
	forecast     models.ForecastData
	rules        []models.RecurringRule
	accounts     []models.BankAccount
	currencies   []models.Currency
	tags         []models.Tag

	transactionsErr error
	forecastErr     error
	rulesErr        error
	accountsErr     error

	// rangeCalls records the ranges requested through the range endpoint.
	rangeCalls []viewRange
	fullCalls  int

	created []models.RecurringRuleCreate
	updated map[uuid.UUID]models.RecurringRuleCreate
	deleted []uuid.UUID
	processed int

	// blockTransactions, when set, makes transaction fetches wait until the
	// channel is closed. Used to provoke stale responses.
	blockTransactions chan struct{}
}

type viewRange struct {
	start, end types.Date
}

func (f *fakeAPI) Transactions(ctx context.Context) ([]models.Transaction, error) {
	f.mu.Lock()
	f.fullCalls++
	block := f.blockTransactions
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return f.transactions, f.transactionsErr
}

func (f *fakeAPI) TransactionsRange(ctx context.Context, start, end types.Date) ([]models.Transaction, error) {
	f.mu.Lock()
	f.rangeCalls = append(f.rangeCalls, viewRange{start: start, end: end})
	f.mu.Unlock()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return f.transactions, f.transactionsErr
}

func (f *fakeAPI) Forecast(_ context.Context, _ api.ForecastParams) (models.ForecastData, error) {
	return f.forecast, f.forecastErr
}

func (f *fakeAPI) RecurringRules(_ context.Context) ([]models.RecurringRule, error) {
	return f.rules, f.rulesErr
}

func (f *fakeAPI) CreateRecurringRule(_ context.Context, create models.RecurringRuleCreate) (models.RecurringRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, create)
	return models.RecurringRule{ID: uuid.New()}, nil
}

func (f *fakeAPI) UpdateRecurringRule(_ context.Context, id uuid.UUID, update models.RecurringRuleCreate) (models.RecurringRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updated == nil {
		f.updated = make(map[uuid.UUID]models.RecurringRuleCreate)
	}
	f.updated[id] = update
	return models.RecurringRule{ID: id}, nil
}

func (f *fakeAPI) DeleteRecurringRule(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) ProcessDueRules(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed++
	return nil
}

func (f *fakeAPI) BankAccounts(_ context.Context) ([]models.BankAccount, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeAPI) Currencies(_ context.Context) ([]models.Currency, error) {
	return f.currencies, nil
}

func (f *fakeAPI) Tags(_ context.Context) ([]models.Tag, error) {
	return f.tags, nil
}
