// Package handlers exposes the cart, promotion and checkout core over a
// small JSON facade. One facade instance serves one shopper session; the
// Session mutex serializes every request so the core packages stay
// single-writer and lock-free.
package handlers

import (
	"sync"

	"github.com/aaravmahajanofficial/storefront-client/internal/cart"
	"github.com/aaravmahajanofficial/storefront-client/internal/checkout"
	"github.com/aaravmahajanofficial/storefront-client/internal/promotion"
)

// Session bundles the per-shopper mutable state. Machine is nil until the
// shopper begins checkout and is discarded again once the order is placed.
type Session struct {
	mu sync.Mutex

	Cart    *cart.Store
	Promos  *promotion.Engine
	Machine *checkout.Machine
}

func NewSession(promos *promotion.Engine) *Session {
	return &Session{
		Cart:   cart.NewStore(),
		Promos: promos,
	}
}

// Lock serializes handler access to the session state.
func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}
