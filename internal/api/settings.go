package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cashflow-zero/client/internal/models"
)

// Settings returns the user's settings. Fields the backend leaves out keep
// their default values, matching what the mobile client does when the
// backend returns a partial object.
func (c *Client) Settings(ctx context.Context) (models.UserSettings, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/settings", nil, nil, &raw); err != nil {
		return models.DefaultSettings(), err
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.DefaultSettings(), err
	}

	return settings.Normalize(), nil
}

// UpdateSettings replaces the user's settings.
func (c *Client) UpdateSettings(ctx context.Context, settings models.UserSettings) (models.UserSettings, error) {
	var updated models.UserSettings
	err := c.do(ctx, http.MethodPut, "/settings", nil, settings, &updated)
	return updated.Normalize(), err
}
