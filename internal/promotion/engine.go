// Package promotion validates user-entered promotion codes against a
// merchant-configured table and derives the discount amount. In production
// the table is served by the discount records of the commerce backend; here
// it is injected at construction, which keeps the engine a pure function of
// its inputs.
package promotion

import (
	"strings"

	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/money"
)

type Kind string

const (
	KindPercentage  Kind = "percentage"
	KindFixedAmount Kind = "fixed_amount"
)

type Promotion struct {
	Code           string
	DiscountID     string
	Kind           Kind
	Value          float64     // 0-1 fraction, percentage kind only
	AmountMinor    money.Minor // fixed_amount kind only
	MinAmountMinor money.Minor
}

// DiscountFor computes the discount this promotion grants on the given
// subtotal. The result never exceeds the subtotal, so the final total can
// never go negative.
func (p *Promotion) DiscountFor(subtotal money.Minor) money.Minor {

	var discount money.Minor

	switch p.Kind {
	case KindFixedAmount:
		discount = p.AmountMinor
	default:
		discount = subtotal.ApplyPercentage(p.Value)
	}

	if discount > subtotal {
		discount = subtotal
	}

	return discount
}

type Engine struct {
	table  map[string]Promotion // keyed by lowercased code
	active *Promotion
}

func NewEngine(promos []config.Promotion) *Engine {

	table := make(map[string]Promotion, len(promos))

	for _, p := range promos {
		code := strings.ToLower(p.Code)
		table[code] = Promotion{
			Code:           code,
			DiscountID:     p.DiscountID,
			Kind:           Kind(p.Kind),
			Value:          p.Value,
			AmountMinor:    money.Minor(p.AmountMinor),
			MinAmountMinor: money.Minor(p.MinAmountMinor),
		}
	}

	return &Engine{table: table}
}

// DefaultTable is the built-in promotion table used when the config does not
// supply one: the two storefront launch codes.
func DefaultTable() []config.Promotion {
	return []config.Promotion{
		{Code: "discount10", Kind: string(KindPercentage), Value: 0.10},
		{Code: "discount20", Kind: string(KindPercentage), Value: 0.20},
	}
}

// Apply validates the code against the table and makes it the active
// promotion. Codes match case-insensitively. Applying a second code replaces
// the first; at most one promotion is active at a time.
func (e *Engine) Apply(code string, subtotal money.Minor) (money.Minor, error) {

	promo, exists := e.table[strings.ToLower(strings.TrimSpace(code))]
	if !exists {
		return 0, errors.UnknownPromoCodeError("Invalid coupon code")
	}

	if subtotal < promo.MinAmountMinor {
		return 0, errors.BelowMinimumAmountError("Order subtotal is below the minimum for this coupon")
	}

	e.active = &promo

	return promo.DiscountFor(subtotal), nil
}

// Remove clears the active promotion.
func (e *Engine) Remove() {
	e.active = nil
}

// Active returns the currently applied promotion, or nil.
func (e *Engine) Active() *Promotion {
	return e.active
}

// DiscountMinor recomputes the active discount against the current subtotal,
// so a cart edited after the code was applied is always priced consistently.
func (e *Engine) DiscountMinor(subtotal money.Minor) money.Minor {

	if e.active == nil {
		return 0
	}

	return e.active.DiscountFor(subtotal)
}

// FinalTotal is the subtotal less the active discount, never negative.
func (e *Engine) FinalTotal(subtotal money.Minor) money.Minor {
	return subtotal.Subtract(e.DiscountMinor(subtotal))
}

// ActiveDiscountID returns the backend discount record id to forward on
// order creation, or "" when no promotion is applied.
func (e *Engine) ActiveDiscountID() string {

	if e.active == nil {
		return ""
	}

	return e.active.DiscountID
}
