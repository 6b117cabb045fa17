package models

import "github.com/shopspring/decimal"

// UserSettings are per user display and forecast preferences.
type UserSettings struct {
	ForecastPeriod    int             `json:"forecastPeriod"`
	DefaultSafeMode   bool            `json:"defaultSafeMode"`
	LowBalanceWarning decimal.Decimal `json:"lowBalanceWarning"`
	Theme             string          `json:"theme"`
	DateFormat        string          `json:"dateFormat"`
}

// DefaultSettings returns the settings used when the backend has none stored
// for the user, or returns a partial object.
func DefaultSettings() UserSettings {
	return UserSettings{
		ForecastPeriod:    30,
		DefaultSafeMode:   false,
		LowBalanceWarning: decimal.NewFromInt(500),
		Theme:             "light",
		DateFormat:        "DD/MM/YYYY",
	}
}

// Normalize fills fields the backend left empty with their defaults.
func (s UserSettings) Normalize() UserSettings {
	defaults := DefaultSettings()

	if s.ForecastPeriod <= 0 {
		s.ForecastPeriod = defaults.ForecastPeriod
	}
	if s.LowBalanceWarning.IsZero() {
		s.LowBalanceWarning = defaults.LowBalanceWarning
	}
	if s.Theme == "" {
		s.Theme = defaults.Theme
	}
	if s.DateFormat == "" {
		s.DateFormat = defaults.DateFormat
	}

	return s
}
