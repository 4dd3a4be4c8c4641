package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToRemoteCart(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/order/cart/add", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(map[string]string{"cart_id": "cart-123"})
		}))
		defer server.Close()

		gw := gateway.NewHTTPGateway(server.URL, 5*time.Second)

		// Act
		cartID, err := gw.AddToRemoteCart(t.Context(), &gateway.AddToCartRequest{
			ProductIDs: []string{"p1", "p2"},
			Quantities: []int{2, 1},
			AuthToken:  "tok-1",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "cart-123", cartID)
		assert.Equal(t, []any{"p1", "p2"}, captured["product_id"])
		assert.Equal(t, []any{float64(2), float64(1)}, captured["qty"])
		assert.Equal(t, []any{"", ""}, captured["variable_id"], "variable ids padded to match products")
		assert.Equal(t, "tok-1", captured["token"])
		_, hasCartID := captured["cart_id"]
		assert.False(t, hasCartID, "empty cart id omitted from the body")
	})

	t.Run("Success - Existing Cart Re-Submitted", func(t *testing.T) {
		// Arrange
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(map[string]string{"cart_id": "cart-123"})
		}))
		defer server.Close()

		gw := gateway.NewHTTPGateway(server.URL, 5*time.Second)

		// Act
		cartID, err := gw.AddToRemoteCart(t.Context(), &gateway.AddToCartRequest{
			ProductIDs:     []string{"p1"},
			Quantities:     []int{1},
			ExistingCartID: "cart-123",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "cart-123", cartID)
		assert.Equal(t, "cart-123", captured["cart_id"])
	})

	t.Run("Failure - Backend Error Status", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		gw := gateway.NewHTTPGateway(server.URL, 5*time.Second)

		// Act
		_, err := gw.AddToRemoteCart(t.Context(), &gateway.AddToCartRequest{
			ProductIDs: []string{"p1"},
			Quantities: []int{1},
		})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeGatewayUnavailable, appErr.Code)
	})

	t.Run("Failure - Backend Unreachable", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		gw := gateway.NewHTTPGateway(server.URL, time.Second)

		// Act
		_, err := gw.AddToRemoteCart(t.Context(), &gateway.AddToCartRequest{
			ProductIDs: []string{"p1"},
			Quantities: []int{1},
		})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeGatewayUnavailable, appErr.Code)
	})
}

func TestCreateAddress(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/order/add_address", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(map[string]string{"_id": "addr-9"})
		}))
		defer server.Close()

		gw := gateway.NewHTTPGateway(server.URL, 5*time.Second)
		address := &models.Address{
			RecipientName: "Jane Citizen",
			Street:        "1 Market St",
			City:          "Sydney",
			State:         "NSW",
			Phone:         "0412345678",
			IsDefault:     true,
		}

		// Act
		addressID, err := gw.CreateAddress(t.Context(), address, "tok-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "addr-9", addressID)
		assert.Equal(t, "Jane Citizen", captured["recipient_name"])
		assert.Equal(t, "NSW", captured["state"])
		assert.Equal(t, true, captured["is_default"])
		assert.Equal(t, "tok-1", captured["token"])
	})

	t.Run("Failure - Gateway Unavailable", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		gw := gateway.NewHTTPGateway(server.URL, 5*time.Second)

		// Act
		_, err := gw.CreateAddress(t.Context(), &models.Address{}, "")

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeGatewayUnavailable, appErr.Code)
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/order/create", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(map[string]any{
				"_id":            "order-77",
				"status":         "paid",
				"payment_method": "Credit Card",
				"total":          9000,
			})
		}))
		defer server.Close()

		gw := gateway.NewHTTPGateway(server.URL, 5*time.Second)

		// Act
		order, err := gw.CreateOrder(t.Context(), &gateway.CreateOrderRequest{
			CartID:        "cart-123",
			AddressID:     "addr-9",
			PaymentMethod: "Credit Card",
			DiscountID:    "promo-10",
			AuthToken:     "tok-1",
		})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "order-77", order.ID)
		assert.Equal(t, models.OrderStatusPaid, order.Status)
		assert.Equal(t, int64(9000), order.TotalMinor)
		assert.Equal(t, "cart-123", captured["cart_id"])
		assert.Equal(t, "addr-9", captured["address_id"])
		assert.Equal(t, "promo-10", captured["discount_id"])
	})

	t.Run("Failure - Malformed Response", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not-json"))
		}))
		defer server.Close()

		gw := gateway.NewHTTPGateway(server.URL, 5*time.Second)

		// Act
		_, err := gw.CreateOrder(t.Context(), &gateway.CreateOrderRequest{})

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeGatewayUnavailable, appErr.Code)
	})
}
