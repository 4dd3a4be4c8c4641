package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-client/internal/checkout"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/session"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils/response"
)

type CheckoutHandler struct {
	session  *Session
	gw       gateway.OrderSubmission
	sessions session.Store
	pricing  config.Pricing
}

func NewCheckoutHandler(sess *Session, gw gateway.OrderSubmission, sessions session.Store, pricing config.Pricing) *CheckoutHandler {
	return &CheckoutHandler{
		session:  sess,
		gw:       gw,
		sessions: sessions,
		pricing:  pricing,
	}
}

type checkoutStateResponse struct {
	models.CheckoutStateResponse
	Summary *models.OrderSummary `json:"summary,omitempty"`
}

func (h *CheckoutHandler) stateResponse() checkoutStateResponse {
	return checkoutStateResponse{
		CheckoutStateResponse: models.CheckoutStateResponse{
			Phase:       string(h.session.Machine.Phase()),
			FieldErrors: h.session.Machine.FieldErrors(),
			Submitting:  h.session.Machine.IsSubmitting(),
		},
		Summary: h.session.Machine.Summary(),
	}
}

func (h *CheckoutHandler) requireMachine(w http.ResponseWriter) bool {

	if h.session.Machine == nil {
		response.Error(w, errors.CheckoutStateError("Checkout has not been started"))
		return false
	}

	return true
}

// Begin pushes the local cart to the backend and constructs a fresh state
// machine at the personal/address step. Beginning again discards any
// previous machine; the remote cart id is simply overwritten.
func (h *CheckoutHandler) Begin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.session.Lock()
		defer h.session.Unlock()

		machine, err := checkout.Start(r.Context(), h.session.Cart, h.session.Promos, h.gw, h.sessions, h.pricing)
		if err != nil {
			slog.Warn("Checkout begin failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		h.session.Machine = machine

		response.Success(w, http.StatusCreated, h.stateResponse())
	}
}

func (h *CheckoutHandler) GetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.session.Lock()
		defer h.session.Unlock()

		if !h.requireMachine(w) {
			return
		}

		response.Success(w, http.StatusOK, h.stateResponse())
	}
}

// SetAddress overwrites the address draft field by field, which clears the
// validation error of every edited field.
func (h *CheckoutHandler) SetAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddressFormRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		h.session.Lock()
		defer h.session.Unlock()

		if !h.requireMachine(w) {
			return
		}

		m := h.session.Machine
		m.SetFirstName(req.FirstName)
		m.SetLastName(req.LastName)
		m.SetEmail(req.Email)
		m.SetPhone(req.Phone)
		m.SetStreet(req.Street)
		m.SetCity(req.City)
		m.SetPostcode(req.Postcode)

		if req.State != "" {
			m.SetState(req.State)
		}

		response.Success(w, http.StatusOK, h.stateResponse())
	}
}

func (h *CheckoutHandler) Advance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.session.Lock()
		defer h.session.Unlock()

		if !h.requireMachine(w) {
			return
		}

		if err := h.session.Machine.Advance(r.Context()); err != nil {
			slog.Warn("Checkout advance failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.stateResponse())
	}
}

func (h *CheckoutHandler) Back() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.session.Lock()
		defer h.session.Unlock()

		if !h.requireMachine(w) {
			return
		}

		if err := h.session.Machine.Back(); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.stateResponse())
	}
}

// SetPayment overwrites the payment draft. The card fields stay inside the
// machine; only the method name is ever sent to the backend.
func (h *CheckoutHandler) SetPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.PaymentFormRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		h.session.Lock()
		defer h.session.Unlock()

		if !h.requireMachine(w) {
			return
		}

		m := h.session.Machine
		m.SetCardNumber(req.CardNumber)
		m.SetCardName(req.CardName)
		m.SetExpiryDate(req.ExpiryDate)
		m.SetCVV(req.CVV)

		if req.PaymentMethod != "" {
			m.SetPaymentMethod(req.PaymentMethod)
		}

		response.Success(w, http.StatusOK, h.stateResponse())
	}
}

// Submit places the order. On success the machine is terminal and the cart
// and promotion are already cleared, so the summary in the response is the
// only rendering source left.
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.session.Lock()
		defer h.session.Unlock()

		if !h.requireMachine(w) {
			return
		}

		summary, err := h.session.Machine.Submit(r.Context())
		if err != nil {
			slog.Warn("Checkout submit failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Checkout completed", slog.String("orderNumber", summary.OrderNumber))
		response.Success(w, http.StatusOK, h.stateResponse())
	}
}
