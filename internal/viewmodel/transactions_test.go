package viewmodel_test

import (
	"context"
	"testing"
	"time"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/cashflow-zero/client/internal/viewmodel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transaction(transactionType models.TransactionType, amount string, date types.Date, description string) models.Transaction {
	return models.Transaction{
		Type:            transactionType,
		Amount:          decimal.RequireFromString(amount),
		TransactionDate: date,
		Description:     description,
	}
}

func TestFilterPipelineOrder(t *testing.T) {
	today := types.NewDate(2026, 9, 1)
	transactions := []models.Transaction{
		transaction(models.TypeExpense, "15.99", today.AddDays(3), "Netflix"),
		transaction(models.TypeIncome, "4500", today.AddDays(24), "Salary"),
		transaction(models.TypeExpense, "1200", today, "Rent"),
		transaction(models.TypeExpense, "60", today.AddDays(-1), "Groceries"),
	}

	result := viewmodel.FilterTransactions(transactions, viewmodel.Filters{Type: viewmodel.FilterAll}, today)

	require.Len(t, result, 3, "strictly past transactions must be excluded")
	assert.Equal(t, "Rent", result[0].Description)
	assert.Equal(t, "Netflix", result[1].Description)
	assert.Equal(t, "Salary", result[2].Description)
}

func TestFilterPipelineUpcomingInvariant(t *testing.T) {
	today := types.NewDate(2026, 9, 1)
	transactions := []models.Transaction{
		transaction(models.TypeExpense, "10", today.AddDays(-30), "old"),
		transaction(models.TypeExpense, "10", today.AddDays(5), "soon"),
		transaction(models.TypeExpense, "10", today, "today"),
		transaction(models.TypeExpense, "10", today.AddDays(1), "tomorrow"),
	}

	result := viewmodel.FilterTransactions(transactions, viewmodel.Filters{}, today)

	for i, transaction := range result {
		assert.False(t, transaction.TransactionDate.Before(today))
		if i > 0 {
			assert.False(t, transaction.TransactionDate.Before(result[i-1].TransactionDate), "result must be non-decreasing by date")
		}
	}
}

func TestFilterPipelineIdempotent(t *testing.T) {
	today := types.NewDate(2026, 9, 1)
	filters := viewmodel.Filters{Type: viewmodel.FilterExpense, Search: "e"}
	transactions := []models.Transaction{
		transaction(models.TypeExpense, "15.99", today.AddDays(3), "Netflix"),
		transaction(models.TypeIncome, "4500", today.AddDays(24), "Salary"),
		transaction(models.TypeExpense, "1200", today, "Rent"),
	}

	once := viewmodel.FilterTransactions(transactions, filters, today)
	twice := viewmodel.FilterTransactions(once, filters, today)

	assert.Equal(t, once, twice)
}

func TestFilterSearch(t *testing.T) {
	today := types.NewDate(2026, 9, 1)
	transactions := []models.Transaction{
		transaction(models.TypeExpense, "15.99", today, "Netflix Subscription"),
		transaction(models.TypeExpense, "1200", today, "Rent"),
		transaction(models.TypeIncome, "4500", today, "Salary"),
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"case insensitive description", "netflix", []string{"Netflix Subscription"}},
		{"amount substring", "15.99", []string{"Netflix Subscription"}},
		{"partial amount", "200", []string{"Rent"}},
		{"no match", "yacht", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := viewmodel.FilterTransactions(transactions, viewmodel.Filters{Search: tt.search}, today)

			descriptions := make([]string, 0, len(result))
			for _, transaction := range result {
				descriptions = append(descriptions, transaction.Description)
			}
			assert.Equal(t, tt.want, descriptions)
		})
	}
}

func TestFilterType(t *testing.T) {
	today := types.NewDate(2026, 9, 1)
	transactions := []models.Transaction{
		transaction(models.TypeExpense, "15.99", today, "Netflix"),
		transaction(models.TypeIncome, "4500", today, "Salary"),
	}

	income := viewmodel.FilterTransactions(transactions, viewmodel.Filters{Type: viewmodel.FilterIncome}, today)
	require.Len(t, income, 1)
	assert.Equal(t, "Salary", income[0].Description)

	all := viewmodel.FilterTransactions(transactions, viewmodel.Filters{Type: viewmodel.FilterAll}, today)
	assert.Len(t, all, 2)
}

func TestApplyFetchStrategy(t *testing.T) {
	backend := &fakeAPI{}
	list := viewmodel.NewTransactionList(backend)

	// No range set: the full collection endpoint is used.
	list.Apply(context.Background(), viewmodel.Filters{Type: viewmodel.FilterAll})
	assert.Equal(t, 1, backend.fullCalls)
	assert.Empty(t, backend.rangeCalls)

	// Both bounds set: the range endpoint shapes the request.
	withRange := viewmodel.Filters{
		Type:  viewmodel.FilterAll,
		Range: viewmodel.DateRange{Start: types.NewDate(2026, 9, 1), End: types.NewDate(2026, 9, 30)},
	}
	list.Apply(context.Background(), withRange)
	require.Len(t, backend.rangeCalls, 1)
	assert.Equal(t, types.NewDate(2026, 9, 1), backend.rangeCalls[0].start)
	assert.Equal(t, types.NewDate(2026, 9, 30), backend.rangeCalls[0].end)

	// A search change with an unchanged range recomputes locally.
	withRange.Search = "rent"
	list.Apply(context.Background(), withRange)
	assert.Len(t, backend.rangeCalls, 1)
	assert.Equal(t, 1, backend.fullCalls)
}

func TestEmptyStates(t *testing.T) {
	future := types.Today().AddDays(7)

	t.Run("no data", func(t *testing.T) {
		list := viewmodel.NewTransactionList(&fakeAPI{})
		list.Apply(context.Background(), viewmodel.Filters{})
		assert.Equal(t, viewmodel.EmptyNoData, list.EmptyState())
	})

	t.Run("filtered", func(t *testing.T) {
		backend := &fakeAPI{transactions: []models.Transaction{
			transaction(models.TypeExpense, "10", future, "Coffee"),
		}}
		list := viewmodel.NewTransactionList(backend)
		list.Apply(context.Background(), viewmodel.Filters{Search: "yacht"})
		assert.Equal(t, viewmodel.EmptyFiltered, list.EmptyState())
	})

	t.Run("failed", func(t *testing.T) {
		backend := &fakeAPI{transactionsErr: assert.AnError}
		list := viewmodel.NewTransactionList(backend)
		list.Apply(context.Background(), viewmodel.Filters{})
		assert.Equal(t, viewmodel.EmptyFailed, list.EmptyState())
		assert.Empty(t, list.Rows())
	})

	t.Run("rows present", func(t *testing.T) {
		backend := &fakeAPI{transactions: []models.Transaction{
			transaction(models.TypeExpense, "10", future, "Coffee"),
		}}
		list := viewmodel.NewTransactionList(backend)
		list.Apply(context.Background(), viewmodel.Filters{})
		assert.Equal(t, viewmodel.EmptyNone, list.EmptyState())
	})
}

func TestStaleResponseIsDropped(t *testing.T) {
	future := types.Today().AddDays(7)
	backend := &fakeAPI{
		transactions:      []models.Transaction{transaction(models.TypeExpense, "10", future, "stale")},
		blockTransactions: make(chan struct{}),
	}
	list := viewmodel.NewTransactionList(backend)

	// First fetch hangs on the blocked full collection endpoint.
	done := make(chan struct{})
	go func() {
		defer close(done)
		list.Apply(context.Background(), viewmodel.Filters{})
	}()

	// Wait until the first fetch reached the backend.
	for {
		backend.mu.Lock()
		started := backend.fullCalls == 1
		backend.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// Second fetch uses the range endpoint, which is not blocked, and
	// completes first.
	fresh := transaction(models.TypeExpense, "20", future, "fresh")
	backend.mu.Lock()
	backend.transactions = []models.Transaction{fresh}
	backend.mu.Unlock()

	list.Apply(context.Background(), viewmodel.Filters{
		Range: viewmodel.DateRange{Start: types.Today(), End: future},
	})

	// Unblock the first fetch; its canceled context must keep the stale
	// result from clobbering the fresh one.
	close(backend.blockTransactions)
	<-done

	rows := list.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "fresh", rows[0].Description)
}
