package api

import (
	"context"
	"net/http"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/google/uuid"
)

// RecurringRules lists all recurring rules of the user.
func (c *Client) RecurringRules(ctx context.Context) ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	err := c.do(ctx, http.MethodGet, "/recurring-rules", nil, nil, &rules)
	return rules, err
}

// RecurringRule returns a single recurring rule.
func (c *Client) RecurringRule(ctx context.Context, id uuid.UUID) (models.RecurringRule, error) {
	var rule models.RecurringRule
	err := c.do(ctx, http.MethodGet, "/recurring-rules/"+id.String(), nil, nil, &rule)
	return rule, err
}

// CreateRecurringRule creates a recurring rule.
func (c *Client) CreateRecurringRule(ctx context.Context, create models.RecurringRuleCreate) (models.RecurringRule, error) {
	var rule models.RecurringRule
	err := c.do(ctx, http.MethodPost, "/recurring-rules", nil, create, &rule)
	return rule, err
}

// UpdateRecurringRule updates a recurring rule.
func (c *Client) UpdateRecurringRule(ctx context.Context, id uuid.UUID, update models.RecurringRuleCreate) (models.RecurringRule, error) {
	var rule models.RecurringRule
	err := c.do(ctx, http.MethodPut, "/recurring-rules/"+id.String(), nil, update, &rule)
	return rule, err
}

// DeleteRecurringRule deletes a recurring rule. Deletion is allowed for
// expired rules as well.
func (c *Client) DeleteRecurringRule(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/recurring-rules/"+id.String(), nil, nil, nil)
}

// ProcessDueRules triggers the application of all rules that are due.
func (c *Client) ProcessDueRules(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/recurring-rules/process", nil, nil, nil)
}
