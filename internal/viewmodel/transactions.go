package viewmodel

import (
	"context"
	"sort"
	"strings"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/rs/zerolog/log"
)

// TypeFilter restricts the transaction list to one transaction type.
type TypeFilter string

const (
	FilterAll     TypeFilter = "ALL"
	FilterIncome  TypeFilter = "INCOME"
	FilterExpense TypeFilter = "EXPENSE"
)

// DateRange is an inclusive date interval. It only takes effect when both
// bounds are set.
type DateRange struct {
	Start types.Date
	End   types.Date
}

// IsSet reports whether both bounds are present.
func (r DateRange) IsSet() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Filters are the inputs of the transaction list.
type Filters struct {
	Type   TypeFilter
	Range  DateRange
	Search string
}

// IsActive reports whether any filter deviates from the unfiltered default.
// The empty state wording depends on this.
func (f Filters) IsActive() bool {
	return (f.Type != "" && f.Type != FilterAll) || f.Range.IsSet() || f.Search != ""
}

// EmptyState classifies why the transaction list shows no rows.
type EmptyState int

const (
	// EmptyNone means there are rows to show.
	EmptyNone EmptyState = iota
	// EmptyNoData means the user has no upcoming transactions at all; the
	// front end shows the "add your first transaction" call to action.
	EmptyNoData
	// EmptyFiltered means active filters excluded everything; the front end
	// suggests adjusting them.
	EmptyFiltered
	// EmptyFailed means the fetch failed; the error banner replaces any
	// empty state call to action.
	EmptyFailed
)

// TransactionClient is the part of the API client the list view model needs.
type TransactionClient interface {
	Transactions(ctx context.Context) ([]models.Transaction, error)
	TransactionsRange(ctx context.Context, start, end types.Date) ([]models.Transaction, error)
}

// TransactionList maintains the working set behind the transaction screen:
// a fetched snapshot plus the current filters, recombined deterministically
// on every change.
type TransactionList struct {
	client  TransactionClient
	res     resource[[]models.Transaction]
	filters Filters

	// fetchedRange is the range the current snapshot was fetched with, used
	// to decide whether a filter change needs a refetch.
	fetchedRange DateRange
	fetched      bool

	// today is replaceable for tests.
	today func() types.Date
}

// NewTransactionList returns a TransactionList in the idle state.
func NewTransactionList(client TransactionClient) *TransactionList {
	return &TransactionList{
		client:  client,
		filters: Filters{Type: FilterAll},
		today:   types.Today,
	}
}

// Apply sets new filters. A changed date range reshapes the request and
// refetches; search and type changes only recompute locally. The first call
// always fetches.
func (l *TransactionList) Apply(ctx context.Context, filters Filters) {
	if filters.Type == "" {
		filters.Type = FilterAll
	}

	needsFetch := !l.fetched || filters.Range != l.filters.Range
	l.filters = filters

	if needsFetch {
		l.fetch(ctx)
	}
}

// Refresh refetches with the current filters, e.g. after a mutation.
func (l *TransactionList) Refresh(ctx context.Context) {
	l.fetch(ctx)
}

func (l *TransactionList) fetch(ctx context.Context) {
	filters := l.filters
	ctx, token := l.res.begin(ctx)

	var transactions []models.Transaction
	var err error
	if filters.Range.IsSet() {
		transactions, err = l.client.TransactionsRange(ctx, filters.Range.Start, filters.Range.End)
	} else {
		transactions, err = l.client.Transactions(ctx)
	}

	if !l.res.complete(token, transactions, err) {
		return
	}

	if err != nil {
		log.Error().Err(err).Msg("transaction fetch failed")
		return
	}

	l.fetchedRange = filters.Range
	l.fetched = true
}

// Filters returns the current filter inputs.
func (l *TransactionList) Filters() Filters {
	return l.filters
}

// Phase returns the current lifecycle phase.
func (l *TransactionList) Phase() Phase {
	phase, _, _ := l.res.state()
	return phase
}

// Rows returns the filtered, sorted transactions derived from the current
// snapshot and filters.
func (l *TransactionList) Rows() []models.Transaction {
	_, snapshot, _ := l.res.state()
	return FilterTransactions(snapshot, l.filters, l.today())
}

// EmptyState classifies the current result for the front end.
func (l *TransactionList) EmptyState() EmptyState {
	phase, snapshot, _ := l.res.state()
	if phase == PhaseError {
		return EmptyFailed
	}

	if len(FilterTransactions(snapshot, l.filters, l.today())) > 0 {
		return EmptyNone
	}

	if l.filters.IsActive() {
		return EmptyFiltered
	}

	return EmptyNoData
}

// FilterTransactions applies the view pipeline to a snapshot. The steps run
// in a fixed order and the function is pure and idempotent:
//
//  1. keep transactions dated today or later,
//  2. sort ascending by date,
//  3. match the search query against description or amount,
//  4. restrict to the filtered type.
func FilterTransactions(transactions []models.Transaction, filters Filters, today types.Date) []models.Transaction {
	upcoming := make([]models.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if !transaction.TransactionDate.Before(today) {
			upcoming = append(upcoming, transaction)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].TransactionDate.Before(upcoming[j].TransactionDate)
	})

	if filters.Search != "" {
		matched := upcoming[:0]
		query := strings.ToLower(filters.Search)
		for _, transaction := range upcoming {
			description := strings.ToLower(transaction.Description)
			if strings.Contains(description, query) || strings.Contains(transaction.Amount.String(), filters.Search) {
				matched = append(matched, transaction)
			}
		}
		upcoming = matched
	}

	if filters.Type != "" && filters.Type != FilterAll {
		matched := upcoming[:0]
		for _, transaction := range upcoming {
			if string(transaction.Type) == string(filters.Type) {
				matched = append(matched, transaction)
			}
		}
		upcoming = matched
	}

	return upcoming
}

// Upcoming returns the first n transactions dated today or later, soonest
// first. The dashboard's recent transactions panel uses this.
func Upcoming(transactions []models.Transaction, today types.Date, n int) []models.Transaction {
	upcoming := FilterTransactions(transactions, Filters{Type: FilterAll}, today)
	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}

	return upcoming
}
