// Package checkout sequences the two-phase checkout: address capture, then
// payment capture. Each phase transition is gated on field validation and
// one remote call; the machine owns the form drafts, the per-field error
// map, and the opaque ids the backend hands out along the way.
package checkout

import (
	"context"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/cart"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-client/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/promotion"
	"github.com/aaravmahajanofficial/storefront-client/internal/session"
)

type Phase string

const (
	PhasePersonalAddress Phase = "personal_address"
	PhasePayment         Phase = "payment"
	PhaseSubmitted       Phase = "submitted"
)

var (
	emailPattern    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern    = regexp.MustCompile(`^\d{10}$`)
	postcodePattern = regexp.MustCompile(`^\d{4}$`)
	cardPattern     = regexp.MustCompile(`^\d{16}$`)
	expiryPattern   = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern      = regexp.MustCompile(`^\d{3,4}$`)
)

// AddressDraft holds the personal/address form fields as entered.
type AddressDraft struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Street    string
	City      string
	State     string
	Postcode  string
}

// PaymentDraft holds the payment form fields. The card data never leaves the
// machine; only the selected payment method name goes to the backend.
type PaymentDraft struct {
	CardNumber    string
	CardName      string
	ExpiryDate    string
	CVV           string
	PaymentMethod string
}

// Machine is the single-writer state of one in-progress checkout. It is
// created by Start when the shopper proceeds from the cart and discarded on
// success or navigation away; a fresh Machine always begins at the
// personal/address phase even when the remote cart already exists.
type Machine struct {
	cart     *cart.Store
	promos   *promotion.Engine
	gw       gateway.OrderSubmission
	sessions session.Store
	pricing  config.Pricing

	phase       Phase
	address     AddressDraft
	payment     PaymentDraft
	fieldErrors map[string]string
	submitting  bool
	summary     *models.OrderSummary

	now func() time.Time
	rng *rand.Rand
}

// sessionValue reads one session key, logging a store failure and treating
// it as an absent value so a degraded store never blocks checkout.
func sessionValue(ctx context.Context, sessions session.Store, key string) (string, bool) {

	value, found, err := sessions.Get(ctx, key)
	if err != nil {
		slog.Warn("Failed to read session key", slog.String("key", key), slog.String("error", err.Error()))

		return "", false
	}

	return value, found
}

// Start pushes the local cart to the backend and returns a machine in the
// personal/address phase. An existing remote cart id is re-submitted, which
// the backend treats as an overwrite of the same cart.
func Start(ctx context.Context, cartStore *cart.Store, promos *promotion.Engine, gw gateway.OrderSubmission, sessions session.Store, pricing config.Pricing) (*Machine, error) {

	if cartStore.IsEmpty() {
		return nil, errors.CheckoutStateError("Your cart is empty, unable to checkout")
	}

	items := cartStore.Items()

	req := &gateway.AddToCartRequest{
		ProductIDs:  make([]string, 0, len(items)),
		Quantities:  make([]int, 0, len(items)),
		VariableIDs: make([]string, len(items)),
	}

	for _, item := range items {
		req.ProductIDs = append(req.ProductIDs, item.ProductID)
		req.Quantities = append(req.Quantities, item.Quantity)
	}

	if token, found := sessionValue(ctx, sessions, session.KeyAuthToken); found {
		req.AuthToken = token
	}

	if cartID, found := sessionValue(ctx, sessions, session.KeyCartID); found {
		req.ExistingCartID = cartID
	}

	cartID, err := gw.AddToRemoteCart(ctx, req)
	if err != nil {
		metrics.CheckoutTransition("start", "gateway_error")

		return nil, err
	}

	if err := sessions.Set(ctx, session.KeyCartID, cartID); err != nil {
		slog.Warn("Failed to persist cart id", slog.String("error", err.Error()))
	}

	metrics.CheckoutTransition("start", "success")
	slog.Info("Checkout started", slog.String("cart_id", cartID), slog.Int("items", len(items)))

	return &Machine{
		cart:     cartStore,
		promos:   promos,
		gw:       gw,
		sessions: sessions,
		pricing:  pricing,
		phase:    PhasePersonalAddress,
		address: AddressDraft{
			State: "NSW",
		},
		payment: PaymentDraft{
			PaymentMethod: "Credit Card",
		},
		fieldErrors: make(map[string]string),
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (m *Machine) Phase() Phase {
	return m.phase
}

func (m *Machine) IsSubmitting() bool {
	return m.submitting
}

// FieldErrors returns a copy of the per-field validation messages.
func (m *Machine) FieldErrors() map[string]string {

	out := make(map[string]string, len(m.fieldErrors))

	for field, msg := range m.fieldErrors {
		out[field] = msg
	}

	return out
}

// Summary is the confirmation projection, non-nil only after a successful
// Submit.
func (m *Machine) Summary() *models.OrderSummary {
	return m.summary
}

func (m *Machine) Address() AddressDraft {
	return m.address
}

func (m *Machine) Payment() PaymentDraft {
	return m.payment
}

// Each setter overwrites its field and clears that field's error, so the
// message disappears as soon as the shopper starts correcting the input.

func (m *Machine) SetFirstName(v string) { m.address.FirstName = v; m.clearError("firstName") }
func (m *Machine) SetLastName(v string)  { m.address.LastName = v; m.clearError("lastName") }
func (m *Machine) SetEmail(v string)     { m.address.Email = v; m.clearError("email") }
func (m *Machine) SetPhone(v string)     { m.address.Phone = v; m.clearError("phone") }
func (m *Machine) SetStreet(v string)    { m.address.Street = v; m.clearError("street") }
func (m *Machine) SetCity(v string)      { m.address.City = v; m.clearError("city") }
func (m *Machine) SetState(v string)     { m.address.State = v; m.clearError("state") }
func (m *Machine) SetPostcode(v string)  { m.address.Postcode = v; m.clearError("postcode") }

func (m *Machine) SetCardNumber(v string)    { m.payment.CardNumber = v; m.clearError("cardNumber") }
func (m *Machine) SetCardName(v string)      { m.payment.CardName = v; m.clearError("cardName") }
func (m *Machine) SetExpiryDate(v string)    { m.payment.ExpiryDate = v; m.clearError("expiryDate") }
func (m *Machine) SetCVV(v string)           { m.payment.CVV = v; m.clearError("cvv") }
func (m *Machine) SetPaymentMethod(v string) { m.payment.PaymentMethod = v; m.clearError("paymentMethod") }

func (m *Machine) clearError(field string) {
	delete(m.fieldErrors, field)
}

// Advance validates the personal/address fields and, when they pass, creates
// the shipping address on the backend and moves to the payment phase. On a
// gateway failure the machine stays where it is with the form intact; the
// shopper retries with unchanged data.
func (m *Machine) Advance(ctx context.Context) error {

	if m.phase != PhasePersonalAddress {
		return errors.CheckoutStateError("Checkout is not in the personal/address step")
	}

	if m.submitting {
		return errors.CheckoutStateError("A submission is already in progress")
	}

	if !m.validatePersonalInfo() {
		metrics.CheckoutTransition("advance", "validation_error")

		return errors.ValidationError("Please correct the highlighted fields").WithFields(m.FieldErrors())
	}

	m.submitting = true
	defer func() { m.submitting = false }()

	address := &models.Address{
		RecipientName: m.address.FirstName + " " + m.address.LastName,
		Street:        m.address.Street,
		City:          m.address.City,
		State:         m.address.State,
		Phone:         m.address.Phone,
		IsDefault:     true,
	}

	var token string
	if v, found := sessionValue(ctx, m.sessions, session.KeyAuthToken); found {
		token = v
	}

	addressID, err := m.gw.CreateAddress(ctx, address, token)
	if err != nil {
		metrics.CheckoutTransition("advance", "gateway_error")

		return err
	}

	if err := m.sessions.Set(ctx, session.KeyAddressID, addressID); err != nil {
		slog.Warn("Failed to persist address id", slog.String("error", err.Error()))
	}

	m.phase = PhasePayment
	metrics.CheckoutTransition("advance", "success")
	slog.Info("Checkout advanced to payment", slog.String("address_id", addressID))

	return nil
}

// Back returns from the payment phase to the personal/address phase. No
// validation, no network call; the previously created address id is kept and
// simply overwritten if the shopper advances again.
func (m *Machine) Back() error {

	if m.phase != PhasePayment {
		return errors.CheckoutStateError("Checkout is not in the payment step")
	}

	m.phase = PhasePersonalAddress

	return nil
}

// Submit validates the payment fields and creates the order. On success the
// machine reaches its terminal phase: the cart is cleared, the opaque ids
// are discarded, and the confirmation summary is built from the cart
// snapshot taken before clearing. On failure everything is retained for a
// retry, including the address id.
func (m *Machine) Submit(ctx context.Context) (*models.OrderSummary, error) {

	if m.phase != PhasePayment {
		return nil, errors.CheckoutStateError("Checkout is not in the payment step")
	}

	if m.submitting {
		return nil, errors.CheckoutStateError("A submission is already in progress")
	}

	if !m.validatePaymentInfo() {
		metrics.CheckoutTransition("submit", "validation_error")

		return nil, errors.ValidationError("Please correct the highlighted fields").WithFields(m.FieldErrors())
	}

	m.submitting = true
	defer func() { m.submitting = false }()

	req := &gateway.CreateOrderRequest{
		PaymentMethod: m.payment.PaymentMethod,
		DiscountID:    m.promos.ActiveDiscountID(),
	}

	if v, found := sessionValue(ctx, m.sessions, session.KeyCartID); found {
		req.CartID = v
	}

	if v, found := sessionValue(ctx, m.sessions, session.KeyAddressID); found {
		req.AddressID = v
	}

	if v, found := sessionValue(ctx, m.sessions, session.KeyAuthToken); found {
		req.AuthToken = v
	}

	if req.DiscountID == "" {
		if v, found := sessionValue(ctx, m.sessions, session.KeyDiscountID); found {
			req.DiscountID = v
		}
	}

	order, err := m.gw.CreateOrder(ctx, req)
	if err != nil {
		metrics.CheckoutTransition("submit", "gateway_error")

		return nil, err
	}

	// snapshot before the cart is cleared; the confirmation view must not
	// recompute from the then-empty cart
	lines := m.cart.Items()
	subtotal := m.cart.SubtotalMinor()
	discount := m.promos.DiscountMinor(subtotal)

	m.summary = NewOrderSummary(lines, order, subtotal, discount, m.pricing, m.rng, m.now())

	m.cart.Clear()
	m.promos.Remove()

	for _, key := range []string{session.KeyCartID, session.KeyAddressID, session.KeyDiscountID} {
		if err := m.sessions.Delete(ctx, key); err != nil {
			slog.Warn("Failed to clear session key", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	m.phase = PhaseSubmitted
	metrics.CheckoutTransition("submit", "success")
	slog.Info("Order created",
		slog.String("order_id", order.ID),
		slog.String("order_number", m.summary.OrderNumber),
		slog.Int64("total_minor", m.summary.TotalMinor))

	return m.summary, nil
}

func (m *Machine) validatePersonalInfo() bool {

	valid := true

	fail := func(field, msg string) {
		m.fieldErrors[field] = msg
		valid = false
	}

	if strings.TrimSpace(m.address.FirstName) == "" {
		fail("firstName", "Please enter first name")
	}

	if strings.TrimSpace(m.address.LastName) == "" {
		fail("lastName", "Please enter last name")
	}

	switch {
	case strings.TrimSpace(m.address.Email) == "":
		fail("email", "Please enter email")
	case !emailPattern.MatchString(m.address.Email):
		fail("email", "Please enter a valid email address")
	}

	switch {
	case strings.TrimSpace(m.address.Phone) == "":
		fail("phone", "Please enter phone number")
	case !phonePattern.MatchString(strings.ReplaceAll(m.address.Phone, " ", "")):
		fail("phone", "Please enter a valid Australian phone number")
	}

	if strings.TrimSpace(m.address.Street) == "" {
		fail("street", "Please enter street address")
	}

	if strings.TrimSpace(m.address.City) == "" {
		fail("city", "Please enter city")
	}

	switch {
	case strings.TrimSpace(m.address.Postcode) == "":
		fail("postcode", "Please enter postcode")
	case !postcodePattern.MatchString(m.address.Postcode):
		fail("postcode", "Please enter a valid Australian postcode")
	}

	return valid
}

func (m *Machine) validatePaymentInfo() bool {

	valid := true

	fail := func(field, msg string) {
		m.fieldErrors[field] = msg
		valid = false
	}

	switch {
	case strings.TrimSpace(m.payment.CardNumber) == "":
		fail("cardNumber", "Please enter card number")
	case !cardPattern.MatchString(strings.ReplaceAll(m.payment.CardNumber, " ", "")):
		fail("cardNumber", "Please enter a valid 16-digit card number")
	}

	if strings.TrimSpace(m.payment.CardName) == "" {
		fail("cardName", "Please enter cardholder name")
	}

	switch {
	case strings.TrimSpace(m.payment.ExpiryDate) == "":
		fail("expiryDate", "Please enter expiry date")
	case !expiryPattern.MatchString(m.payment.ExpiryDate):
		fail("expiryDate", "Please use MM/YY format")
	}

	switch {
	case strings.TrimSpace(m.payment.CVV) == "":
		fail("cvv", "Please enter CVV")
	case !cvvPattern.MatchString(m.payment.CVV):
		fail("cvv", "Please enter a valid CVV")
	}

	if strings.TrimSpace(m.payment.PaymentMethod) == "" {
		fail("paymentMethod", "Please select payment method")
	}

	return valid
}
