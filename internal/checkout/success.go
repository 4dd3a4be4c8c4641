package checkout

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/money"
)

// NewOrderSummary derives the confirmation view from the cart snapshot taken
// at submit time plus the backend order. Tax is charged on the pre-discount
// subtotal; the order number and delivery estimate fall back to generated
// values when the backend does not supply them.
func NewOrderSummary(lines []models.CartItem, order *models.Order, subtotal, discount money.Minor, pricing config.Pricing, rng *rand.Rand, now time.Time) *models.OrderSummary {

	orderNumber := order.OrderNumber
	if orderNumber == "" {
		orderNumber = fmt.Sprintf("ORD-%06d", 100000+rng.Intn(900000))
	}

	tax := subtotal.ApplyPercentage(pricing.TaxRate)
	total := subtotal.Subtract(discount).Add(tax)

	// 3-5 days out
	delivery := now.AddDate(0, 0, 3+rng.Intn(3))

	return &models.OrderSummary{
		OrderNumber:       orderNumber,
		OrderDate:         now,
		EstimatedDelivery: delivery,
		Lines:             lines,
		SubtotalMinor:     int64(subtotal),
		DiscountMinor:     int64(discount),
		TaxMinor:          int64(tax),
		TotalMinor:        int64(total),
		Total:             total.Display(pricing.CurrencyCode),
		PaymentMethod:     order.PaymentMethod,
		PaymentStatus:     "Paid",
	}
}
