// Package session models the browser-persisted slice of checkout state: the
// opaque server-issued identifiers and the optional bearer auth token. These
// are the only values that survive a page reload; everything else in the
// cart and checkout is ephemeral.
package session

import "context"

// Keys mirror the persisted-storage names the storefront has always used.
const (
	KeyCartID     = "cartId"
	KeyAddressID  = "addressId"
	KeyAuthToken  = "userToken"
	KeyDiscountID = "discountId"
)

// Store is injected into the cart hand-off and the checkout state machine
// rather than accessed as ambient global state, so tests can supply an
// in-memory fake.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
