package viewmodel_test

import (
	"context"
	"testing"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/cashflow-zero/client/internal/viewmodel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(closing string) models.DailyBreakdown {
	return models.DailyBreakdown{ClosingBalance: decimal.RequireFromString(closing)}
}

func TestDisplayBalance(t *testing.T) {
	tests := []struct {
		name     string
		forecast models.ForecastData
		want     string
	}{
		{
			name: "zero closing with positive opening falls back to opening",
			forecast: models.ForecastData{
				StartingBalance: decimal.NewFromInt(100),
				DailyBreakdown:  []models.DailyBreakdown{day("0")},
			},
			want: "100",
		},
		{
			name: "non-zero closing wins regardless of opening",
			forecast: models.ForecastData{
				StartingBalance: decimal.NewFromInt(9999),
				DailyBreakdown:  []models.DailyBreakdown{day("250")},
			},
			want: "250",
		},
		{
			name: "zero closing with zero opening stays at zero",
			forecast: models.ForecastData{
				StartingBalance: decimal.Zero,
				DailyBreakdown:  []models.DailyBreakdown{day("0")},
			},
			want: "0",
		},
		{
			name: "negative closing is shown as is",
			forecast: models.ForecastData{
				StartingBalance: decimal.NewFromInt(100),
				DailyBreakdown:  []models.DailyBreakdown{day("-42.50")},
			},
			want: "-42.5",
		},
		{
			name: "empty breakdown shows the opening balance",
			forecast: models.ForecastData{
				StartingBalance: decimal.NewFromInt(77),
			},
			want: "77",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast := viewmodel.NewForecast(&fakeAPI{forecast: tt.forecast})
			forecast.Refresh(context.Background(), 30, false)

			assert.Equal(t, tt.want, forecast.DisplayBalance().String())
		})
	}
}

func TestForecastFailureZeroesPanel(t *testing.T) {
	forecast := viewmodel.NewForecast(&fakeAPI{forecastErr: assert.AnError})
	forecast.Refresh(context.Background(), 30, false)

	assert.Equal(t, viewmodel.PhaseError, forecast.Phase())
	assert.Equal(t, viewmodel.ErrForecastUnavailable, forecast.ErrorMessage())
	assert.True(t, forecast.DisplayBalance().IsZero())
	assert.Empty(t, forecast.Data().DailyBreakdown)
	assert.True(t, forecast.Data().SafeToSpend.IsZero())
}

func TestLowestDayAndPeriodEnd(t *testing.T) {
	forecast := viewmodel.NewForecast(&fakeAPI{forecast: models.ForecastData{
		StartingBalance: decimal.NewFromInt(500),
		DailyBreakdown: []models.DailyBreakdown{
			{Date: types.NewDate(2026, 9, 1), ClosingBalance: decimal.NewFromInt(500)},
			{Date: types.NewDate(2026, 9, 2), ClosingBalance: decimal.NewFromInt(120)},
			{Date: types.NewDate(2026, 9, 3), ClosingBalance: decimal.NewFromInt(340)},
		},
	}})
	forecast.Refresh(context.Background(), 3, false)

	lowest, ok := forecast.LowestDay()
	require.True(t, ok)
	assert.Equal(t, types.NewDate(2026, 9, 2), lowest.Date)
	assert.Equal(t, "120", lowest.ClosingBalance.String())

	end, ok := forecast.PeriodEnd()
	require.True(t, ok)
	assert.Equal(t, "340", end.String())
}

func TestLowestDayWithoutBreakdown(t *testing.T) {
	forecast := viewmodel.NewForecast(&fakeAPI{})
	forecast.Refresh(context.Background(), 30, false)

	_, ok := forecast.LowestDay()
	assert.False(t, ok)
	_, ok = forecast.PeriodEnd()
	assert.False(t, ok)
}

func TestLowBalanceWarning(t *testing.T) {
	forecast := viewmodel.NewForecast(&fakeAPI{forecast: models.ForecastData{
		Warnings: []models.ForecastWarning{
			{Type: models.WarningLowBalance, Message: "balance drops below threshold"},
		},
	}})
	forecast.Refresh(context.Background(), 30, false)

	assert.True(t, forecast.HasLowBalanceWarning())
}

func TestGroupByTag(t *testing.T) {
	transactions := []models.TransactionSummary{
		{Description: "Electricity", Amount: decimal.NewFromInt(40), TagNames: []string{"Utilities"}},
		{Description: "Water", Amount: decimal.NewFromInt(60), TagNames: []string{"Utilities"}},
		{Description: "Snacks", Amount: decimal.NewFromInt(25)},
	}

	groups := viewmodel.GroupByTag(transactions)

	require.Len(t, groups, 2)
	assert.Equal(t, "Untagged", groups[0].TagName)
	assert.Equal(t, "25", groups[0].Total.String())
	assert.Equal(t, "Utilities", groups[1].TagName)
	assert.Equal(t, "100", groups[1].Total.String())
	assert.Len(t, groups[1].Transactions, 2)
}

func TestGroupByTagUsesFirstTag(t *testing.T) {
	transactions := []models.TransactionSummary{
		{Description: "Dinner", Amount: decimal.NewFromInt(30), TagNames: []string{"Food", "Social"}},
	}

	groups := viewmodel.GroupByTag(transactions)

	require.Len(t, groups, 1)
	assert.Equal(t, "Food", groups[0].TagName)
}

func TestGroupByTagEmpty(t *testing.T) {
	assert.Empty(t, viewmodel.GroupByTag(nil))
}

func TestHoldGroups(t *testing.T) {
	accountID := uuid.New()
	forecast := viewmodel.NewForecast(&fakeAPI{forecast: models.ForecastData{
		BankHoldSummary: []models.BankHoldSummary{
			{
				BankAccountID: accountID,
				MinimumHold:   decimal.NewFromInt(125),
				ExpenseCount:  3,
				Transactions: []models.TransactionSummary{
					{Amount: decimal.NewFromInt(40), TagNames: []string{"Utilities"}},
					{Amount: decimal.NewFromInt(60), TagNames: []string{"Utilities"}},
					{Amount: decimal.NewFromInt(25)},
				},
			},
		},
	}})
	forecast.Refresh(context.Background(), 30, false)

	groups := forecast.HoldGroups(accountID)
	require.Len(t, groups, 2)
	assert.Equal(t, "Untagged", groups[0].TagName)
	assert.Equal(t, "Utilities", groups[1].TagName)

	assert.Nil(t, forecast.HoldGroups(uuid.New()), "unknown accounts have no groups")
}

func TestTotalHold(t *testing.T) {
	forecast := viewmodel.NewForecast(&fakeAPI{forecast: models.ForecastData{
		BankHoldSummary: []models.BankHoldSummary{
			{BankAccountID: uuid.New(), MinimumHold: decimal.NewFromInt(100)},
			{BankAccountID: uuid.New(), MinimumHold: decimal.NewFromInt(50)},
		},
	}})
	forecast.Refresh(context.Background(), 30, false)

	assert.Equal(t, "150", forecast.TotalHold().String())
}

func TestDashboardPanelsFailIndependently(t *testing.T) {
	future := types.Today().AddDays(3)

	t.Run("forecast fails, transactions render", func(t *testing.T) {
		backend := &fakeAPI{
			forecastErr:  assert.AnError,
			transactions: []models.Transaction{transaction(models.TypeExpense, "10", future, "Coffee")},
		}
		dashboard := viewmodel.NewDashboard(backend)
		dashboard.Refresh(context.Background(), 30, false)

		assert.Equal(t, viewmodel.PhaseError, dashboard.Forecast.Phase())
		assert.False(t, dashboard.RecentFailed())
		assert.Len(t, dashboard.RecentTransactions(), 1)
	})

	t.Run("transactions fail, forecast renders", func(t *testing.T) {
		backend := &fakeAPI{
			forecast:        models.ForecastData{StartingBalance: decimal.NewFromInt(100)},
			transactionsErr: assert.AnError,
		}
		dashboard := viewmodel.NewDashboard(backend)
		dashboard.Refresh(context.Background(), 30, false)

		assert.Equal(t, viewmodel.PhaseSuccess, dashboard.Forecast.Phase())
		assert.True(t, dashboard.RecentFailed())
		assert.Empty(t, dashboard.RecentTransactions())
	})
}

func TestDashboardRecentLimit(t *testing.T) {
	future := types.Today()
	var transactions []models.Transaction
	for i := 0; i < 8; i++ {
		transactions = append(transactions, transaction(models.TypeExpense, "10", future.AddDays(i), "t"))
	}

	dashboard := viewmodel.NewDashboard(&fakeAPI{transactions: transactions})
	dashboard.Refresh(context.Background(), 30, false)

	assert.Len(t, dashboard.RecentTransactions(), 5)
}
