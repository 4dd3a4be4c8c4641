// Package cart owns the ephemeral client-side cart: an insertion-ordered
// list of product snapshots with quantities. There is no authoritative
// server copy until checkout begins.
package cart

import (
	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/money"
)

type Store struct {
	items []models.CartItem
	index map[string]int // product id -> position in items
}

func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

// AddItem merges the quantity into an existing line for the same product or
// appends a new line holding a price/name/image snapshot of the product.
// Adding a product with no available stock is rejected.
func (s *Store) AddItem(product *models.Product, quantity int) error {

	if product.AvailableQty == 0 {
		return errors.OutOfStockError("Product is out of stock").WithDetail(product.ID)
	}

	if quantity < 1 {
		quantity = 1
	}

	if pos, exists := s.index[product.ID]; exists {
		s.items[pos].Quantity += quantity
		return nil
	}

	s.items = append(s.items, models.CartItem{
		ProductID:      product.ID,
		Name:           product.Name,
		ImageURL:       product.FirstImage(),
		UnitPriceMinor: product.DiscountPriceMinor,
		BasePriceMinor: product.BasePriceMinor,
		Quantity:       quantity,
	})
	s.index[product.ID] = len(s.items) - 1

	return nil
}

// RemoveItem deletes the line for the product id. Removing an absent product
// is a no-op.
func (s *Store) RemoveItem(productID string) {

	pos, exists := s.index[productID]
	if !exists {
		return
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, productID)

	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ProductID] = i
	}
}

// SetQuantity overwrites the quantity of an existing line. A quantity below
// one removes the line; a line never persists at quantity zero. Stock is
// re-checked server-side at order time, not here.
func (s *Store) SetQuantity(productID string, quantity int) {

	if quantity < 1 {
		s.RemoveItem(productID)
		return
	}

	if pos, exists := s.index[productID]; exists {
		s.items[pos].Quantity = quantity
	}
}

// SubtotalMinor recomputes the subtotal on every read so it can never
// desynchronize from the item list.
func (s *Store) SubtotalMinor() money.Minor {

	var subtotal money.Minor

	for _, item := range s.items {
		subtotal = subtotal.Add(money.Minor(item.LineTotalMinor()))
	}

	return subtotal
}

func (s *Store) TotalItemCount() int {

	var count int

	for _, item := range s.items {
		count += item.Quantity
	}

	return count
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []models.CartItem {

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)

	return items
}

// Clear empties the cart. Called once after a successful order creation.
func (s *Store) Clear() {
	s.items = nil
	s.index = make(map[string]int)
}
