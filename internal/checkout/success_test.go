package checkout_test

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/checkout"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderSummary(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(1))
	lines := []models.CartItem{
		{ProductID: "p1", Name: "Runner", UnitPriceMinor: 2500, Quantity: 2},
		{ProductID: "p2", Name: "Sandal", UnitPriceMinor: 5000, Quantity: 1},
	}

	t.Run("Success - Totals And Backend Order Number", func(t *testing.T) {
		// Arrange
		order := &models.Order{ID: "order-1", OrderNumber: "ORD-445566", PaymentMethod: "Credit Card"}

		// Act
		summary := checkout.NewOrderSummary(lines, order, 10000, 1000, testPricing, rng, now)

		// Assert
		assert.Equal(t, "ORD-445566", summary.OrderNumber)
		assert.Equal(t, int64(10000), summary.SubtotalMinor)
		assert.Equal(t, int64(1000), summary.DiscountMinor)
		assert.Equal(t, int64(1000), summary.TaxMinor, "tax on the pre-discount subtotal")
		assert.Equal(t, int64(10000), summary.TotalMinor)
		assert.Equal(t, "$100.00", summary.Total)
		assert.Equal(t, "Credit Card", summary.PaymentMethod)
		assert.Equal(t, "Paid", summary.PaymentStatus)
		assert.Equal(t, now, summary.OrderDate)
		assert.Len(t, summary.Lines, 2)
	})

	t.Run("Success - Generated Order Number Fallback", func(t *testing.T) {
		// Arrange
		order := &models.Order{ID: "order-2", PaymentMethod: "PayPal"}

		// Act
		summary := checkout.NewOrderSummary(lines, order, 10000, 0, testPricing, rng, now)

		// Assert
		assert.Regexp(t, regexp.MustCompile(`^ORD-\d{6}$`), summary.OrderNumber)
	})

	t.Run("Success - Delivery Window", func(t *testing.T) {
		// Arrange
		order := &models.Order{ID: "order-3"}

		// Act & Assert: estimate always lands three to five days out
		for range 20 {
			summary := checkout.NewOrderSummary(lines, order, 10000, 0, testPricing, rng, now)
			days := int(summary.EstimatedDelivery.Sub(now).Hours() / 24)
			assert.GreaterOrEqual(t, days, 3)
			assert.LessOrEqual(t, days, 5)
		}
	})

	t.Run("Success - Tax Floors Fractional Minor Units", func(t *testing.T) {
		// Arrange
		order := &models.Order{ID: "order-4"}

		// Act
		summary := checkout.NewOrderSummary(lines, order, 9999, 0, testPricing, rng, now)

		// Assert
		assert.Equal(t, int64(999), summary.TaxMinor)
		assert.Equal(t, int64(10998), summary.TotalMinor)
	})
}
