package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-client/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	session   *Session
	catalog   *catalog.Client
	pricing   config.Pricing
	validator *validator.Validate
}

func NewCartHandler(session *Session, client *catalog.Client, pricing config.Pricing) *CartHandler {
	return &CartHandler{
		session:   session,
		catalog:   client,
		pricing:   pricing,
		validator: validator.New(),
	}
}

// cartResponse snapshots the current cart plus the derived pricing under the
// session lock.
func (h *CartHandler) cartResponse() models.CartResponse {

	subtotal := h.session.Cart.SubtotalMinor()
	discount := h.session.Promos.DiscountMinor(subtotal)
	total := h.session.Promos.FinalTotal(subtotal)

	resp := models.CartResponse{
		Items:         h.session.Cart.Items(),
		TotalItems:    h.session.Cart.TotalItemCount(),
		SubtotalMinor: int64(subtotal),
		DiscountMinor: int64(discount),
		TotalMinor:    int64(total),
		Subtotal:      subtotal.Display(h.pricing.CurrencyCode),
		Total:         total.Display(h.pricing.CurrencyCode),
	}

	if promo := h.session.Promos.Active(); promo != nil {
		resp.PromotionCode = promo.Code
	}

	return resp
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.session.Lock()
		defer h.session.Unlock()

		response.Success(w, http.StatusOK, h.cartResponse())
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalog.ProductByID(req.ProductID)
		if err != nil {
			slog.Warn("Add to cart for unknown product", slog.String("productId", req.ProductID))
			response.Error(w, err)
			return
		}

		h.session.Lock()
		defer h.session.Unlock()

		if err := h.session.Cart.AddItem(product, req.Quantity); err != nil {
			slog.Warn("Add to cart rejected",
				slog.String("productId", req.ProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		metrics.CartItemsAdded(req.Quantity)
		slog.Info("Item added to cart",
			slog.String("productId", req.ProductID),
			slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, h.cartResponse())
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		h.session.Lock()
		defer h.session.Unlock()

		h.session.Cart.SetQuantity(req.ProductID, req.Quantity)

		response.Success(w, http.StatusOK, h.cartResponse())
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")

		h.session.Lock()
		defer h.session.Unlock()

		h.session.Cart.RemoveItem(productID)

		slog.Info("Item removed from cart", slog.String("productId", productID))
		response.Success(w, http.StatusOK, h.cartResponse())
	}
}

func (h *CartHandler) ApplyPromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ApplyPromotionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		h.session.Lock()
		defer h.session.Unlock()

		discount, err := h.session.Promos.Apply(req.Code, h.session.Cart.SubtotalMinor())
		if err != nil {
			metrics.PromotionApplication("rejected")
			slog.Warn("Promotion rejected",
				slog.String("code", req.Code),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		metrics.PromotionApplication("applied")
		slog.Info("Promotion applied",
			slog.String("code", req.Code),
			slog.Int64("discount_minor", int64(discount)))
		response.Success(w, http.StatusOK, h.cartResponse())
	}
}

func (h *CartHandler) RemovePromotion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.session.Lock()
		defer h.session.Unlock()

		h.session.Promos.Remove()

		response.Success(w, http.StatusOK, h.cartResponse())
	}
}
