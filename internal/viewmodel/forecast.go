package viewmodel

import (
	"context"
	"sort"

	"github.com/cashflow-zero/client/internal/api"
	"github.com/cashflow-zero/client/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrForecastUnavailable is the message shown when the forecast fetch fails.
// The panel renders zeroed balances next to it instead of crashing, and the
// other dashboard panels keep working.
const ErrForecastUnavailable = "Failed to load forecast"

// ForecastClient is the part of the API client the forecast view model needs.
type ForecastClient interface {
	Forecast(ctx context.Context, params api.ForecastParams) (models.ForecastData, error)
}

// Forecast drives the forecast panel: it requests a projection for the
// current period and safe mode and derives the display values from it.
type Forecast struct {
	client ForecastClient
	res    resource[models.ForecastData]

	// groups caches the per account tag grouping for the currently loaded
	// forecast. It is invalidated whenever new data arrives.
	groups map[uuid.UUID][]TagGroup
}

// NewForecast returns a Forecast view model in the idle state.
func NewForecast(client ForecastClient) *Forecast {
	return &Forecast{client: client}
}

// Refresh requests a new projection. Concurrent refreshes are serialized by
// generation: if the inputs change while a request is in flight, the stale
// response is dropped.
func (f *Forecast) Refresh(ctx context.Context, days int, safeMode bool) {
	ctx, token := f.res.begin(ctx)

	data, err := f.client.Forecast(ctx, api.ForecastParams{Days: days, SafeMode: safeMode})
	if !f.res.complete(token, data, err) {
		return
	}

	if err != nil {
		log.Error().Err(err).Msg("forecast fetch failed")
	}
	f.groups = nil
}

// Phase returns the current lifecycle phase.
func (f *Forecast) Phase() Phase {
	phase, _, _ := f.res.state()
	return phase
}

// ErrorMessage returns the user facing message for a failed fetch, empty
// otherwise.
func (f *Forecast) ErrorMessage() string {
	phase, _, _ := f.res.state()
	if phase == PhaseError {
		return ErrForecastUnavailable
	}

	return ""
}

// Data returns the loaded forecast. After a failed fetch it returns the
// zero value: zeroed balances and an empty breakdown.
func (f *Forecast) Data() models.ForecastData {
	_, data, _ := f.res.state()
	return data
}

// DisplayBalance derives the "current balance" the dashboard shows.
//
// The backend's day 0 closing balance is authoritative. A closing balance of
// zero while the opening balance is positive is treated as an unpopulated
// placeholder and the opening balance is shown instead. This papers over a
// known backend inconsistency; whether day 0 can legitimately close at zero
// is still unconfirmed with the forecast owner.
func (f *Forecast) DisplayBalance() decimal.Decimal {
	data := f.Data()

	if len(data.DailyBreakdown) == 0 {
		return data.StartingBalance
	}

	closing := data.DailyBreakdown[0].ClosingBalance
	if closing.IsZero() && data.StartingBalance.IsPositive() {
		return data.StartingBalance
	}

	return closing
}

// LowestDay returns the day with the lowest closing balance in the forecast
// window. The second return value is false when there is no breakdown.
func (f *Forecast) LowestDay() (models.DailyBreakdown, bool) {
	data := f.Data()
	if len(data.DailyBreakdown) == 0 {
		return models.DailyBreakdown{}, false
	}

	lowest := data.DailyBreakdown[0]
	for _, day := range data.DailyBreakdown[1:] {
		if day.ClosingBalance.LessThan(lowest.ClosingBalance) {
			lowest = day
		}
	}

	return lowest, true
}

// PeriodEnd returns the closing balance of the last forecast day. The second
// return value is false when there is no breakdown.
func (f *Forecast) PeriodEnd() (decimal.Decimal, bool) {
	data := f.Data()
	if len(data.DailyBreakdown) == 0 {
		return decimal.Zero, false
	}

	return data.DailyBreakdown[len(data.DailyBreakdown)-1].ClosingBalance, true
}

// HasLowBalanceWarning reports whether the projection breaches the low
// balance threshold on any day.
func (f *Forecast) HasLowBalanceWarning() bool {
	return f.Data().HasWarning(models.WarningLowBalance)
}

// TotalHold sums the minimum holds over all bank accounts.
func (f *Forecast) TotalHold() decimal.Decimal {
	total := decimal.Zero
	for _, hold := range f.Data().BankHoldSummary {
		total = total.Add(hold.MinimumHold)
	}

	return total
}

// TagGroup is one group of a bank account's upcoming expenses, keyed by the
// first tag of each transaction.
type TagGroup struct {
	TagName      string
	Total        decimal.Decimal
	Transactions []models.TransactionSummary
}

// UntaggedGroup is the group name for transactions without tags.
const UntaggedGroup = "Untagged"

// HoldGroups returns the tag grouping for one bank account's upcoming
// expense list. Results are cached until the next successful refresh since
// the grouping is pure in the source list.
func (f *Forecast) HoldGroups(bankAccountID uuid.UUID) []TagGroup {
	if cached, ok := f.groups[bankAccountID]; ok {
		return cached
	}

	for _, hold := range f.Data().BankHoldSummary {
		if hold.BankAccountID != bankAccountID {
			continue
		}

		groups := GroupByTag(hold.Transactions)
		if f.groups == nil {
			f.groups = make(map[uuid.UUID][]TagGroup)
		}
		f.groups[bankAccountID] = groups
		return groups
	}

	return nil
}

// GroupByTag groups transactions by their first tag name, with "Untagged"
// for transactions that carry no tags. Groups are sorted alphabetically by
// tag name and each group's amounts are summed for the subtotal.
func GroupByTag(transactions []models.TransactionSummary) []TagGroup {
	byName := make(map[string]*TagGroup)

	for _, transaction := range transactions {
		name := UntaggedGroup
		if len(transaction.TagNames) > 0 {
			name = transaction.TagNames[0]
		}

		group, ok := byName[name]
		if !ok {
			group = &TagGroup{TagName: name, Total: decimal.Zero}
			byName[name] = group
		}

		group.Total = group.Total.Add(transaction.Amount)
		group.Transactions = append(group.Transactions, transaction)
	}

	groups := make([]TagGroup, 0, len(byName))
	for _, group := range byName {
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].TagName < groups[j].TagName
	})

	return groups
}
