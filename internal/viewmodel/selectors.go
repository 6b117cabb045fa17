package viewmodel

import (
	"context"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Selector is the shared behavior of the reference data pickers: fetch the
// collection once, resolve ids to items for display, and report selection
// changes upward through a plain callback. Selectors never mutate server
// state.
type Selector[T any] struct {
	load     func(ctx context.Context) ([]T, error)
	idOf     func(T) uuid.UUID
	onChange func(uuid.UUID)

	items   []T
	loading bool
	failed  bool
	value   uuid.UUID
}

func newSelector[T any](load func(ctx context.Context) ([]T, error), idOf func(T) uuid.UUID, onChange func(uuid.UUID)) *Selector[T] {
	return &Selector[T]{
		load:     load,
		idOf:     idOf,
		onChange: onChange,
		loading:  true,
	}
}

// Load fetches the collection. It is called once when the selector mounts.
func (s *Selector[T]) Load(ctx context.Context) {
	items, err := s.load(ctx)
	s.loading = false
	if err != nil {
		log.Error().Err(err).Msg("selector collection fetch failed")
		s.failed = true
		return
	}

	s.items = items
}

// Loading reports whether the initial fetch is still pending; the front end
// renders a skeleton while it is.
func (s *Selector[T]) Loading() bool {
	return s.loading
}

// Items returns the fetched collection in server order.
func (s *Selector[T]) Items() []T {
	return s.items
}

// Value returns the currently selected id.
func (s *Selector[T]) Value() uuid.UUID {
	return s.value
}

// Resolve returns the item with the given id for display.
func (s *Selector[T]) Resolve(id uuid.UUID) (T, bool) {
	for _, item := range s.items {
		if s.idOf(item) == id {
			return item, true
		}
	}

	var zero T
	return zero, false
}

// Select changes the selection and reports it upward.
func (s *Selector[T]) Select(id uuid.UUID) {
	s.value = id
	if s.onChange != nil {
		s.onChange(id)
	}
}

// BankAccountSelector picks a bank account. When no value is supplied it
// auto selects the default account, or the first one in server order.
type BankAccountSelector struct {
	*Selector[models.BankAccount]
}

// BankAccountLister is the part of the API client the selector needs.
type BankAccountLister interface {
	BankAccounts(ctx context.Context) ([]models.BankAccount, error)
}

// NewBankAccountSelector returns a selector preset to value. Pass uuid.Nil
// to let the selector pick the default on load.
func NewBankAccountSelector(client BankAccountLister, value uuid.UUID, onChange func(uuid.UUID)) *BankAccountSelector {
	selector := newSelector(client.BankAccounts, func(a models.BankAccount) uuid.UUID { return a.ID }, onChange)
	selector.value = value
	return &BankAccountSelector{Selector: selector}
}

// Load fetches the accounts and auto selects when no value was supplied:
// the account flagged as default wins, otherwise the first one. The change
// callback fires exactly once in that case.
func (s *BankAccountSelector) Load(ctx context.Context) {
	s.Selector.Load(ctx)

	if s.value != uuid.Nil || len(s.items) == 0 {
		return
	}

	chosen := s.items[0]
	for _, account := range s.items {
		if account.IsDefault {
			chosen = account
			break
		}
	}

	s.Select(chosen.ID)
}

// CurrencySelector picks a currency.
type CurrencySelector struct {
	*Selector[models.Currency]
}

// CurrencyLister is the part of the API client the selector needs.
type CurrencyLister interface {
	Currencies(ctx context.Context) ([]models.Currency, error)
}

// NewCurrencySelector returns a selector preset to value.
func NewCurrencySelector(client CurrencyLister, value uuid.UUID, onChange func(uuid.UUID)) *CurrencySelector {
	selector := newSelector(client.Currencies, func(c models.Currency) uuid.UUID { return c.ID }, onChange)
	selector.value = value
	return &CurrencySelector{Selector: selector}
}

// Base returns the base currency. The second return value is false when the
// collection has not loaded or holds no base currency.
func (s *CurrencySelector) Base() (models.Currency, bool) {
	for _, currency := range s.items {
		if currency.IsBaseCurrency {
			return currency, true
		}
	}

	return models.Currency{}, false
}

// TagLister is the part of the API client the tag selector needs.
type TagLister interface {
	Tags(ctx context.Context) ([]models.Tag, error)
}

// TagSelector picks any number of tags. The contract is a plain
// "selected ids in, next selected ids out" callback; how the front end
// renders the choices (chips or a combobox) is presentational.
type TagSelector struct {
	load     func(ctx context.Context) ([]models.Tag, error)
	onChange func([]uuid.UUID)

	tags     []models.Tag
	loading  bool
	selected []uuid.UUID
}

// NewTagSelector returns a selector preset to the given selection.
func NewTagSelector(client TagLister, selected []uuid.UUID, onChange func([]uuid.UUID)) *TagSelector {
	return &TagSelector{
		load:     client.Tags,
		onChange: onChange,
		loading:  true,
		selected: append([]uuid.UUID(nil), selected...),
	}
}

// Load fetches the tags once.
func (s *TagSelector) Load(ctx context.Context) {
	tags, err := s.load(ctx)
	s.loading = false
	if err != nil {
		log.Error().Err(err).Msg("tag fetch failed")
		return
	}

	s.tags = tags
}

// Loading reports whether the initial fetch is still pending.
func (s *TagSelector) Loading() bool {
	return s.loading
}

// Tags returns the fetched tags in server order.
func (s *TagSelector) Tags() []models.Tag {
	return s.tags
}

// Selected returns the current selection.
func (s *TagSelector) Selected() []uuid.UUID {
	return s.selected
}

// Toggle adds the tag to the selection or removes it when already selected,
// then reports the next selection upward.
func (s *TagSelector) Toggle(id uuid.UUID) {
	next := make([]uuid.UUID, 0, len(s.selected)+1)
	removed := false
	for _, selected := range s.selected {
		if selected == id {
			removed = true
			continue
		}
		next = append(next, selected)
	}

	if !removed {
		next = append(next, id)
	}

	s.selected = next
	if s.onChange != nil {
		s.onChange(next)
	}
}
