package gateway

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a testify mock of OrderSubmission shared by the checkout
// and handler tests.
type MockGateway struct {
	mock.Mock
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) AddToRemoteCart(ctx context.Context, req *AddToCartRequest) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

func (m *MockGateway) CreateAddress(ctx context.Context, address *models.Address, authToken string) (string, error) {
	args := m.Called(ctx, address, authToken)

	return args.String(0), args.Error(1)
}

func (m *MockGateway) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)

	if order := args.Get(0); order != nil {
		return order.(*models.Order), args.Error(1)
	}

	return nil, args.Error(1)
}
