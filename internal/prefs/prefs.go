// Package prefs persists the shopper's display preferences: the theme
// name and the eco-mode flag.
package prefs

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/Jurgensen-SJB/supermercado/internal/errors"
	"github.com/Jurgensen-SJB/supermercado/internal/storage"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Manager struct {
	storage storage.Store
}

func NewManager(store storage.Store) *Manager {
	return &Manager{storage: store}
}

// Theme returns the saved theme name, defaulting to light. Corrupt
// payloads fall back to the default.
func (m *Manager) Theme(ctx context.Context) string {
	var theme string

	found, err := m.storage.Get(ctx, storage.KeyTheme, &theme)
	if err != nil {
		if errors.Is(err, storage.ErrMalformed) {
			_ = m.storage.Delete(ctx, storage.KeyTheme)
		} else {
			slog.Warn("Failed to load theme", slog.String("error", err.Error()))
		}

		return ThemeLight
	}

	if !found || theme == "" {
		return ThemeLight
	}

	return theme
}

func (m *Manager) SetTheme(ctx context.Context, theme string) error {
	if err := m.storage.Set(ctx, storage.KeyTheme, theme); err != nil {
		return apperrors.StorageError("Failed to persist theme").WithError(err)
	}

	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (m *Manager) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if m.Theme(ctx) == ThemeDark {
		next = ThemeLight
	}

	if err := m.SetTheme(ctx, next); err != nil {
		return "", err
	}

	return next, nil
}

// EcoMode returns the saved eco-mode flag, defaulting to off.
func (m *Manager) EcoMode(ctx context.Context) bool {
	var enabled bool

	found, err := m.storage.Get(ctx, storage.KeyEco, &enabled)
	if err != nil {
		if errors.Is(err, storage.ErrMalformed) {
			_ = m.storage.Delete(ctx, storage.KeyEco)
		} else {
			slog.Warn("Failed to load eco mode", slog.String("error", err.Error()))
		}

		return false
	}

	return found && enabled
}

func (m *Manager) SetEcoMode(ctx context.Context, enabled bool) error {
	if err := m.storage.Set(ctx, storage.KeyEco, enabled); err != nil {
		return apperrors.StorageError("Failed to persist eco mode").WithError(err)
	}

	return nil
}

// ToggleEcoMode flips the flag and returns the new state.
func (m *Manager) ToggleEcoMode(ctx context.Context) (bool, error) {
	next := !m.EcoMode(ctx)

	if err := m.SetEcoMode(ctx, next); err != nil {
		return false, err
	}

	return next, nil
}
