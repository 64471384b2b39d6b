// Package session holds the authenticated user: obtained from the auth
// API, persisted locally, and discarded on logout or corruption.
package session

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/Jurgensen-SJB/supermercado/internal/errors"
	"github.com/Jurgensen-SJB/supermercado/internal/models"
	"github.com/Jurgensen-SJB/supermercado/internal/storage"
)

// Authenticator is the slice of the API client the session layer needs.
type Authenticator interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
}

// CartClearer lets logout wipe the cart without importing the cart
// package directly.
type CartClearer interface {
	Clear(ctx context.Context) error
}

type Manager struct {
	auth    Authenticator
	storage storage.Store
	cart    CartClearer
}

func NewManager(auth Authenticator, store storage.Store, cart CartClearer) *Manager {
	return &Manager{
		auth:    auth,
		storage: store,
		cart:    cart,
	}
}

func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := m.auth.Login(ctx, &models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := m.storage.Set(ctx, storage.KeyAuth, user); err != nil {
		return nil, apperrors.StorageError("Failed to persist session").WithError(err)
	}

	slog.Info("User logged in", slog.String("user_id", user.ID.String()))

	return user, nil
}

func (m *Manager) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	user, err := m.auth.Register(ctx, &models.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := m.storage.Set(ctx, storage.KeyAuth, user); err != nil {
		return nil, apperrors.StorageError("Failed to persist session").WithError(err)
	}

	slog.Info("User registered", slog.String("user_id", user.ID.String()))

	return user, nil
}

// Logout drops the session and clears the cart so the next shopper on
// this device starts clean.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.storage.Delete(ctx, storage.KeyAuth); err != nil {
		return apperrors.StorageError("Failed to clear session").WithError(err)
	}

	if m.cart != nil {
		if err := m.cart.Clear(ctx); err != nil {
			slog.Warn("Failed to clear cart on logout", slog.String("error", err.Error()))
		}
	}

	slog.Info("User logged out")

	return nil
}

// CurrentUser returns the persisted user, or nil when logged out. A
// corrupt session payload is discarded, not repaired.
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User

	found, err := m.storage.Get(ctx, storage.KeyAuth, &user)
	if err != nil {
		if errors.Is(err, storage.ErrMalformed) {
			slog.Warn("Purging corrupt session payload", slog.String("error", err.Error()))

			if delErr := m.storage.Delete(ctx, storage.KeyAuth); delErr != nil {
				return nil, apperrors.StorageError("Failed to purge corrupt session").WithError(delErr)
			}

			return nil, nil
		}

		return nil, apperrors.StorageError("Failed to load session").WithError(err)
	}

	if !found {
		return nil, nil
	}

	return &user, nil
}

func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	user, err := m.CurrentUser(ctx)

	return err == nil && user != nil
}

// IsAdmin reports whether the current user can reach the admin surface.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	user, err := m.CurrentUser(ctx)

	return err == nil && user.Admin()
}
