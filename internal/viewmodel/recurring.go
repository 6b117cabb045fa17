package viewmodel

import (
	"context"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RecurringRuleClient is the part of the API client rule management needs.
type RecurringRuleClient interface {
	RecurringRules(ctx context.Context) ([]models.RecurringRule, error)
	CreateRecurringRule(ctx context.Context, create models.RecurringRuleCreate) (models.RecurringRule, error)
	UpdateRecurringRule(ctx context.Context, id uuid.UUID, update models.RecurringRuleCreate) (models.RecurringRule, error)
	DeleteRecurringRule(ctx context.Context, id uuid.UUID) error
	ProcessDueRules(ctx context.Context) error
}

// RuleList drives the recurring rules screen. Expired rules stay visible
// and deletable; they are only excluded from editing.
type RuleList struct {
	client RecurringRuleClient
	res    resource[[]models.RecurringRule]
	today  func() types.Date
}

// NewRuleList returns a RuleList in the idle state.
func NewRuleList(client RecurringRuleClient) *RuleList {
	return &RuleList{client: client, today: types.Today}
}

// Refresh fetches the rules.
func (l *RuleList) Refresh(ctx context.Context) {
	ctx, token := l.res.begin(ctx)

	rules, err := l.client.RecurringRules(ctx)
	if !l.res.complete(token, rules, err) {
		return
	}

	if err != nil {
		log.Error().Err(err).Msg("recurring rule fetch failed")
	}
}

// Phase returns the current lifecycle phase.
func (l *RuleList) Phase() Phase {
	phase, _, _ := l.res.state()
	return phase
}

// Rules returns the fetched rules.
func (l *RuleList) Rules() []models.RecurringRule {
	_, rules, _ := l.res.state()
	return rules
}

// IsExpired reports whether a rule is expired relative to today.
func (l *RuleList) IsExpired(rule models.RecurringRule) bool {
	return rule.IsExpired(l.today())
}

// Delete removes a rule and refetches. Expired rules remain deletable.
func (l *RuleList) Delete(ctx context.Context, id uuid.UUID) error {
	if err := l.client.DeleteRecurringRule(ctx, id); err != nil {
		return err
	}

	l.Refresh(ctx)
	return nil
}

// ProcessDue asks the backend to apply all rules that are due and refetches.
func (l *RuleList) ProcessDue(ctx context.Context) error {
	if err := l.client.ProcessDueRules(ctx); err != nil {
		return err
	}

	l.Refresh(ctx)
	return nil
}

// RuleForm models the create/edit form for one recurring rule, including
// the multi currency conversion at save time.
type RuleForm struct {
	Description   string
	Amount        decimal.Decimal
	Type          models.TransactionType
	Frequency     models.Frequency
	IsEndOfMonth  bool
	StartDate     types.Date
	CurrencyCode  string
	ExchangeRate  decimal.Decimal
	Confidence    models.IncomeConfidence
	ReminderDays  int
	BankAccountID *uuid.UUID
	TagIDs        []uuid.UUID

	baseCurrency string
	initial      *models.RecurringRule
	today        types.Date
}

// NewRuleForm returns a form for creating a new rule.
func NewRuleForm(baseCurrency string, today types.Date) *RuleForm {
	return &RuleForm{
		Type:         models.TypeExpense,
		Frequency:    models.FrequencyMonthly,
		StartDate:    today,
		CurrencyCode: baseCurrency,
		ExchangeRate: decimal.NewFromInt(1),
		baseCurrency: baseCurrency,
		today:        today,
	}
}

// EditRuleForm returns a form prefilled from an existing rule. For rules
// saved in a foreign currency the form shows the original amount, currency
// and rate rather than the converted base amount.
func EditRuleForm(rule models.RecurringRule, baseCurrency string, today types.Date) *RuleForm {
	form := NewRuleForm(baseCurrency, today)
	form.initial = &rule

	form.Description = rule.Description
	form.Type = rule.Type
	form.Frequency = rule.Frequency
	form.IsEndOfMonth = rule.IsEndOfMonth
	form.StartDate = rule.StartDate
	form.Confidence = rule.Confidence
	form.ReminderDays = rule.ReminderDays
	form.BankAccountID = rule.BankAccountID
	form.TagIDs = append([]uuid.UUID(nil), rule.TagIDs...)

	if rule.OriginalAmount != nil && rule.OriginalCurrencyCode != "" {
		form.Amount = *rule.OriginalAmount
		form.CurrencyCode = rule.OriginalCurrencyCode
		if rule.ExchangeRate != nil {
			form.ExchangeRate = *rule.ExchangeRate
		}
	} else {
		form.Amount = rule.Amount
		form.CurrencyCode = rule.CurrencyCode
	}

	return form
}

// IsExpired reports whether the edited rule is expired. Expired rules are
// rendered read-only with all fields disabled and no save action.
func (f *RuleForm) IsExpired() bool {
	return f.initial != nil && f.initial.IsExpired(f.today)
}

// ConvertToBase converts an amount entered in a foreign currency into the
// base currency by dividing through the exchange rate. The result is
// rounded to 2 decimal places; the backend stores base amounts at cent
// precision.
func ConvertToBase(amount, rate decimal.Decimal) (decimal.Decimal, error) {
	if !rate.IsPositive() {
		return decimal.Zero, models.ErrExchangeRateInvalid
	}

	return amount.DivRound(rate, 2), nil
}

// payload builds the request body. For foreign currencies the persisted
// amount is converted into the base currency and the original amount,
// currency and rate travel alongside for display and audit.
func (f *RuleForm) payload() (models.RecurringRuleCreate, error) {
	create := models.RecurringRuleCreate{
		Description:   f.Description,
		Type:          f.Type,
		Frequency:     f.Frequency,
		StartDate:     f.StartDate,
		Confidence:    f.Confidence,
		ReminderDays:  f.ReminderDays,
		BankAccountID: f.BankAccountID,
		TagIDs:        f.TagIDs,
		Active:        true,
		CurrencyCode:  f.baseCurrency,
	}

	// End of month handling only exists for monthly rules.
	if f.Frequency == models.FrequencyMonthly {
		create.IsEndOfMonth = f.IsEndOfMonth
	}

	if f.CurrencyCode == f.baseCurrency {
		create.Amount = f.Amount
		return create, nil
	}

	converted, err := ConvertToBase(f.Amount, f.ExchangeRate)
	if err != nil {
		return models.RecurringRuleCreate{}, err
	}

	amount := f.Amount
	rate := f.ExchangeRate
	create.Amount = converted
	create.OriginalAmount = &amount
	create.OriginalCurrencyCode = f.CurrencyCode
	create.ExchangeRate = &rate
	return create, nil
}

// Submit saves the form. For an expired rule it returns ErrRuleExpired
// without issuing any network call.
func (f *RuleForm) Submit(ctx context.Context, client RecurringRuleClient) (models.RecurringRule, error) {
	if f.IsExpired() {
		return models.RecurringRule{}, models.ErrRuleExpired
	}

	create, err := f.payload()
	if err != nil {
		return models.RecurringRule{}, err
	}

	if f.initial != nil {
		return client.UpdateRecurringRule(ctx, f.initial.ID, create)
	}

	return client.CreateRecurringRule(ctx, create)
}
