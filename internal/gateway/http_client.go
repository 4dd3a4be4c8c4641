package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpGateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPGateway returns an OrderSubmission talking to the commerce backend
// at baseURL. Outbound requests carry the otelhttp transport so backend
// calls show up as client spans.
func NewHTTPGateway(baseURL string, timeout time.Duration) OrderSubmission {
	return &httpGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type addToCartBody struct {
	ProductIDs  []string `json:"product_id"`
	Quantities  []int    `json:"qty"`
	VariableIDs []string `json:"variable_id"`
	Token       string   `json:"token,omitempty"`
	CartID      string   `json:"cart_id,omitempty"`
}

type addToCartReply struct {
	CartID string `json:"cart_id"`
}

func (g *httpGateway) AddToRemoteCart(ctx context.Context, req *AddToCartRequest) (string, error) {

	variableIDs := req.VariableIDs
	if variableIDs == nil {
		variableIDs = make([]string, len(req.ProductIDs))
	}

	body := addToCartBody{
		ProductIDs:  req.ProductIDs,
		Quantities:  req.Quantities,
		VariableIDs: variableIDs,
		Token:       req.AuthToken,
		CartID:      req.ExistingCartID,
	}

	var reply addToCartReply

	if err := g.post(ctx, "/order/cart/add", body, &reply); err != nil {
		return "", err
	}

	return reply.CartID, nil
}

type addAddressBody struct {
	RecipientName string `json:"recipient_name"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"is_default"`
	Token         string `json:"token,omitempty"`
}

type addAddressReply struct {
	ID string `json:"_id"`
}

func (g *httpGateway) CreateAddress(ctx context.Context, address *models.Address, authToken string) (string, error) {

	body := addAddressBody{
		RecipientName: address.RecipientName,
		Street:        address.Street,
		City:          address.City,
		State:         address.State,
		Phone:         address.Phone,
		IsDefault:     address.IsDefault,
		Token:         authToken,
	}

	var reply addAddressReply

	if err := g.post(ctx, "/order/add_address", body, &reply); err != nil {
		return "", err
	}

	return reply.ID, nil
}

type createOrderBody struct {
	CartID        string `json:"cart_id"`
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method"`
	DiscountID    string `json:"discount_id,omitempty"`
	Token         string `json:"token,omitempty"`
}

func (g *httpGateway) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {

	body := createOrderBody{
		CartID:        req.CartID,
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		DiscountID:    req.DiscountID,
		Token:         req.AuthToken,
	}

	var order models.Order

	if err := g.post(ctx, "/order/create", body, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (g *httpGateway) post(ctx context.Context, path string, body any, dest any) error {

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.InternalError("Failed to encode gateway request").WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.InternalError("Failed to build gateway request").WithError(err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		slog.Error("Gateway request failed", slog.String("path", path), slog.String("error", err.Error()))
		metrics.GatewayRequest(path, "error")

		return errors.GatewayUnavailableError("The store is temporarily unavailable, please try again").WithError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.Error("Gateway returned non-2xx status", slog.String("path", path), slog.Int("status", resp.StatusCode))
		metrics.GatewayRequest(path, "error")

		return errors.GatewayUnavailableError("The store is temporarily unavailable, please try again").
			WithDetail(fmt.Sprintf("%s returned status %d", path, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequest(path, "error")

		return errors.GatewayUnavailableError("Failed to read gateway response").WithError(err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		metrics.GatewayRequest(path, "error")

		return errors.GatewayUnavailableError("Gateway returned an unexpected response").WithError(err)
	}

	metrics.GatewayRequest(path, "success")

	return nil
}
