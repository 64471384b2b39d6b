package testutils

import (
	"context"

	"github.com/Jurgensen-SJB/supermercado/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockOrderAPI is a testify double for the order-placement slice of the
// API client.
type MockOrderAPI struct {
	mock.Mock
}

func NewMockOrderAPI() *MockOrderAPI {
	return &MockOrderAPI{}
}

func (m *MockOrderAPI) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)

	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockAuthAPI is a testify double for the auth slice of the API client.
type MockAuthAPI struct {
	mock.Mock
}

func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{}
}

func (m *MockAuthAPI) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

// StaticUserProvider satisfies checkout.UserProvider with a fixed user.
type StaticUserProvider struct {
	User *models.User
	Err  error
}

func (p *StaticUserProvider) CurrentUser(context.Context) (*models.User, error) {
	return p.User, p.Err
}
