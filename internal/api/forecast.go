package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/shopspring/decimal"
)

// ForecastParams shape the projection the backend computes.
type ForecastParams struct {
	Days     int
	SafeMode bool

	// StartingBalance overrides the opening balance the backend would
	// otherwise derive from the transaction history.
	StartingBalance *decimal.Decimal

	// StartDate anchors the forecast window. Zero means today.
	StartDate types.Date
}

// Forecast requests a daily balance projection.
func (c *Client) Forecast(ctx context.Context, params ForecastParams) (models.ForecastData, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(params.Days))
	query.Set("safeMode", strconv.FormatBool(params.SafeMode))
	if params.StartingBalance != nil {
		query.Set("startingBalance", params.StartingBalance.String())
	}
	if !params.StartDate.IsZero() {
		query.Set("startDate", params.StartDate.String())
	}

	var forecast models.ForecastData
	err := c.do(ctx, http.MethodGet, "/forecast", query, nil, &forecast)
	return forecast, err
}
