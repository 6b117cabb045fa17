package viewmodel

import (
	"context"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/rs/zerolog/log"
)

// recentTransactionCount is how many upcoming transactions the dashboard
// panel shows.
const recentTransactionCount = 5

// DashboardClient is the part of the API client the dashboard needs.
type DashboardClient interface {
	ForecastClient
	Transactions(ctx context.Context) ([]models.Transaction, error)
}

// Dashboard combines the forecast panel with the recent transactions panel.
// The two panels fetch independently: one failing must not blank the other.
type Dashboard struct {
	Forecast *Forecast

	client DashboardClient
	recent resource[[]models.Transaction]
	today  func() types.Date
}

// NewDashboard returns a Dashboard view model in the idle state.
func NewDashboard(client DashboardClient) *Dashboard {
	return &Dashboard{
		Forecast: NewForecast(client),
		client:   client,
		today:    types.Today,
	}
}

// Refresh loads both panels. Panel errors are absorbed into each panel's
// own state.
func (d *Dashboard) Refresh(ctx context.Context, forecastDays int, safeMode bool) {
	d.Forecast.Refresh(ctx, forecastDays, safeMode)
	d.refreshRecent(ctx)
}

func (d *Dashboard) refreshRecent(ctx context.Context) {
	ctx, token := d.recent.begin(ctx)

	transactions, err := d.client.Transactions(ctx)
	if !d.recent.complete(token, transactions, err) {
		return
	}

	if err != nil {
		log.Error().Err(err).Msg("recent transactions fetch failed")
	}
}

// RecentTransactions returns up to five upcoming transactions, soonest
// first. After a failed fetch it returns an empty list.
func (d *Dashboard) RecentTransactions() []models.Transaction {
	_, snapshot, _ := d.recent.state()
	return Upcoming(snapshot, d.today(), recentTransactionCount)
}

// RecentFailed reports whether the recent transactions panel is in the
// error state.
func (d *Dashboard) RecentFailed() bool {
	phase, _, _ := d.recent.state()
	return phase == PhaseError
}
