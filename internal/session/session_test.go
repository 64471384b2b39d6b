package session_test

import (
	"context"
	"encoding/json"
	"testing"

	apperrors "github.com/Jurgensen-SJB/supermercado/internal/errors"
	"github.com/Jurgensen-SJB/supermercado/internal/models"
	"github.com/Jurgensen-SJB/supermercado/internal/session"
	"github.com/Jurgensen-SJB/supermercado/internal/storage"
	"github.com/Jurgensen-SJB/supermercado/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type recordingCart struct {
	cleared int
	err     error
}

func (c *recordingCart) Clear(context.Context) error {
	c.cleared++

	return c.err
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Persists User To Storage", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		auth := testutils.NewMockAuthAPI()
		manager := session.NewManager(auth, store, &recordingCart{})

		auth.On("Login", ctx, &models.LoginRequest{Email: "ana@example.com", Password: "secret123"}).
			Return(&models.User{ID: "9", Name: "Ana", Email: "ana@example.com"}, nil).Once()

		// Act
		user, err := manager.Login(ctx, "ana@example.com", "secret123")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.UserID("9"), user.ID)
		assert.Contains(t, store.Data, storage.KeyAuth)
		assert.True(t, manager.IsLoggedIn(ctx))
		auth.AssertExpectations(t)
	})

	t.Run("Failure - Bad Credentials Leave No Session", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		auth := testutils.NewMockAuthAPI()
		manager := session.NewManager(auth, store, &recordingCart{})

		auth.On("Login", ctx, mock.AnythingOfType("*models.LoginRequest")).
			Return(nil, apperrors.UnauthorizedError("Credenciales inválidas")).Once()

		// Act
		user, err := manager.Login(ctx, "ana@example.com", "wrong")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.NotContains(t, store.Data, storage.KeyAuth)
		assert.False(t, manager.IsLoggedIn(ctx))
	})

	t.Run("Failure - Storage Write Error Surfaces", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		store.FailWith = assert.AnError
		auth := testutils.NewMockAuthAPI()
		manager := session.NewManager(auth, store, &recordingCart{})

		auth.On("Login", ctx, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.User{ID: "9"}, nil).Once()

		// Act
		user, err := manager.Login(ctx, "ana@example.com", "secret123")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)
		appErr, ok := apperrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeStorage, appErr.Code)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - New User Is Logged In Immediately", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		auth := testutils.NewMockAuthAPI()
		manager := session.NewManager(auth, store, &recordingCart{})

		auth.On("Register", ctx, &models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}).
			Return(&models.User{ID: "10", Name: "Ana", Email: "ana@example.com"}, nil).Once()

		// Act
		user, err := manager.Register(ctx, "Ana", "ana@example.com", "secret123")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.UserID("10"), user.ID)
		assert.True(t, manager.IsLoggedIn(ctx))
		auth.AssertExpectations(t)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Drops Session And Clears Cart", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		store.SeedRaw(storage.KeyAuth, `{"id": "9", "name": "Ana", "isAdmin": 0}`)
		cart := &recordingCart{}
		manager := session.NewManager(testutils.NewMockAuthAPI(), store, cart)

		// Act
		err := manager.Logout(ctx)

		// Assert
		assert.NoError(t, err)
		assert.NotContains(t, store.Data, storage.KeyAuth)
		assert.Equal(t, 1, cart.cleared)
		assert.False(t, manager.IsLoggedIn(ctx))
	})

	t.Run("Success - Cart Clear Failure Does Not Fail Logout", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		store.SeedRaw(storage.KeyAuth, `{"id": "9"}`)
		cart := &recordingCart{err: assert.AnError}
		manager := session.NewManager(testutils.NewMockAuthAPI(), store, cart)

		// Act
		err := manager.Logout(ctx)

		// Assert
		assert.NoError(t, err)
		assert.NotContains(t, store.Data, storage.KeyAuth)
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Returns Nil When Logged Out", func(t *testing.T) {
		// Arrange
		manager := session.NewManager(testutils.NewMockAuthAPI(), testutils.NewMemStore(), &recordingCart{})

		// Act
		user, err := manager.CurrentUser(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Success - Numeric User ID Normalizes To String", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		store.SeedRaw(storage.KeyAuth, `{"id": 9, "name": "Ana", "email": "ana@example.com", "isAdmin": 1}`)
		manager := session.NewManager(testutils.NewMockAuthAPI(), store, &recordingCart{})

		// Act
		user, err := manager.CurrentUser(ctx)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, models.UserID("9"), user.ID)
		assert.True(t, user.Admin())
	})

	t.Run("Success - Corrupt Payload Is Purged", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		store.SeedRaw(storage.KeyAuth, `{broken`)
		manager := session.NewManager(testutils.NewMockAuthAPI(), store, &recordingCart{})

		// Act
		user, err := manager.CurrentUser(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NotContains(t, store.Data, storage.KeyAuth)
	})
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Flag One Grants Admin", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		assert.NoError(t, store.Set(ctx, storage.KeyAuth, &models.User{ID: "1", IsAdmin: 1}))
		manager := session.NewManager(testutils.NewMockAuthAPI(), store, &recordingCart{})

		// Act & Assert
		assert.True(t, manager.IsAdmin(ctx))
	})

	t.Run("Failure - Any Other Flag Denies Admin", func(t *testing.T) {
		// Arrange
		store := testutils.NewMemStore()
		store.SeedRaw(storage.KeyAuth, `{"id": "2", "isAdmin": 2}`)
		manager := session.NewManager(testutils.NewMockAuthAPI(), store, &recordingCart{})

		// Act & Assert
		assert.False(t, manager.IsAdmin(ctx))
	})

	t.Run("Failure - Logged Out Is Never Admin", func(t *testing.T) {
		// Arrange
		manager := session.NewManager(testutils.NewMockAuthAPI(), testutils.NewMemStore(), &recordingCart{})

		// Act & Assert
		assert.False(t, manager.IsAdmin(ctx))
	})
}

// guard against the session layer changing the persisted shape other
// storefront versions read back
func TestSessionPayloadShape(t *testing.T) {
	ctx := context.Background()

	store := testutils.NewMemStore()
	auth := testutils.NewMockAuthAPI()
	manager := session.NewManager(auth, store, &recordingCart{})

	auth.On("Login", ctx, mock.AnythingOfType("*models.LoginRequest")).
		Return(&models.User{ID: "9", Name: "Ana", Email: "ana@example.com", IsAdmin: 1}, nil).Once()

	_, err := manager.Login(ctx, "ana@example.com", "secret123")
	assert.NoError(t, err)

	var payload map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(store.Data[storage.KeyAuth], &payload))
	assert.Contains(t, payload, "id")
	assert.Contains(t, payload, "name")
	assert.Contains(t, payload, "email")
	assert.Contains(t, payload, "isAdmin")
}
