// Package settings caches the user's preferences for the lifetime of a
// session.
package settings

import (
	"context"
	"sync"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/rs/zerolog/log"
)

// Service is the part of the API client the store needs.
type Service interface {
	Settings(ctx context.Context) (models.UserSettings, error)
	UpdateSettings(ctx context.Context, settings models.UserSettings) (models.UserSettings, error)
}

// Store caches the user settings. Without a session, or when the backend
// cannot be reached, it serves the defaults so that dependent screens always
// have a usable preference object.
type Store struct {
	mu       sync.Mutex
	service  Service
	settings models.UserSettings
	loading  bool
	handlers []func(models.UserSettings)
}

// NewStore returns a Store serving default settings until Load is called.
func NewStore(service Service) *Store {
	return &Store{
		service:  service,
		settings: models.DefaultSettings(),
		loading:  true,
	}
}

// Load fetches the settings from the backend. A failed fetch falls back to
// the defaults and is not an error for the caller: the screens behind the
// settings gate must render either way.
func (s *Store) Load(ctx context.Context) {
	fetched, err := s.service.Settings(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("settings could not be loaded, using defaults")
		fetched = models.DefaultSettings()
	}

	s.set(fetched)
}

// Reset reverts to the default settings, used at sign out.
func (s *Store) Reset() {
	s.set(models.DefaultSettings())
}

// Update persists new settings and replaces the cached copy with what the
// backend returns.
func (s *Store) Update(ctx context.Context, settings models.UserSettings) error {
	updated, err := s.service.UpdateSettings(ctx, settings)
	if err != nil {
		return err
	}

	s.set(updated)
	return nil
}

func (s *Store) set(settings models.UserSettings) {
	s.mu.Lock()
	s.settings = settings
	s.loading = false
	handlers := make([]func(models.UserSettings), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, handler := range handlers {
		handler(settings)
	}
}

// Settings returns the cached settings.
func (s *Store) Settings() models.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Loading reports whether the first load is still pending.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// OnChange registers a handler that is called whenever the settings change.
func (s *Store) OnChange(handler func(models.UserSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}
