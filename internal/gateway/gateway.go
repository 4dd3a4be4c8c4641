// Package gateway wraps the order-submission endpoints of the remote
// commerce backend. The checkout state machine drives these calls; every
// failure is converted to an AppError at this boundary so nothing network
// shaped leaks into the core.
package gateway

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

// AddToCartRequest mirrors the order/cart/add body. The three slices are
// parallel; VariableIDs stays empty until product variants ship.
type AddToCartRequest struct {
	ProductIDs     []string
	Quantities     []int
	VariableIDs    []string
	ExistingCartID string
	AuthToken      string
}

type CreateOrderRequest struct {
	CartID        string
	AddressID     string
	PaymentMethod string
	DiscountID    string
	AuthToken     string
}

// OrderSubmission is the surface the checkout flow needs from the backend.
// AddToRemoteCart is idempotent with respect to re-submission of the same
// cart id, so a retry after a network failure is safe.
type OrderSubmission interface {
	AddToRemoteCart(ctx context.Context, req *AddToCartRequest) (string, error)
	CreateAddress(ctx context.Context, address *models.Address, authToken string) (string, error)
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error)
}
