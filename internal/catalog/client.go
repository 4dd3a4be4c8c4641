// Package catalog is the read-only product/category view consumed by the
// cart. Data freshness is the host's decision: nothing is fetched at
// construction, the host calls Refresh at a time of its choosing.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	sanitizer  *bluemonday.Policy

	// mu guards the published view; Refresh swaps it while reads are served
	// concurrently. The slices and map are never mutated after publication.
	mu         sync.RWMutex
	products   []models.Product
	byID       map[string]*models.Product
	categories []models.Category
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		// product names and descriptions arrive as merchant-entered rich
		// text; strip all markup before anything renders it
		sanitizer: bluemonday.StrictPolicy(),
		byID:      make(map[string]*models.Product),
	}
}

// Refresh re-fetches products and categories. Unpublished products are
// dropped; the previous view is kept untouched when either fetch fails.
func (c *Client) Refresh(ctx context.Context) error {

	var fetched []models.Product

	if err := c.get(ctx, "/product/all_products", &fetched); err != nil {
		return err
	}

	var categories []models.Category

	if err := c.get(ctx, "/product/category/full", &categories); err != nil {
		return err
	}

	published := make([]models.Product, 0, len(fetched))
	byID := make(map[string]*models.Product, len(fetched))

	for _, p := range fetched {

		if !p.Published {
			continue
		}

		p.Name = c.sanitizer.Sanitize(p.Name)
		p.Description = c.sanitizer.Sanitize(p.Description)

		published = append(published, p)
	}

	for i := range published {
		byID[published[i].ID] = &published[i]
	}

	c.mu.Lock()
	c.products = published
	c.byID = byID
	c.categories = categories
	c.mu.Unlock()

	slog.Info("Catalog refreshed",
		slog.Int("products", len(published)),
		slog.Int("categories", len(categories)))

	return nil
}

// Products returns the published products from the last successful Refresh.
func (c *Client) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.products
}

func (c *Client) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.categories
}

// ProductByID returns a copy of the product, so callers never hold a pointer
// into a view that a later Refresh replaces.
func (c *Client) ProductByID(id string) (*models.Product, error) {

	c.mu.RLock()
	defer c.mu.RUnlock()

	product, exists := c.byID[id]
	if !exists {
		return nil, errors.NotFoundError("Product not found").WithDetail(id)
	}

	clone := *product

	return &clone, nil
}

// CategoryProducts fetches the product list of one category directly; the
// result is not cached into the main view.
func (c *Client) CategoryProducts(ctx context.Context, categoryID string) ([]models.Product, error) {

	var products []models.Product

	if err := c.get(ctx, "/product/category/"+categoryID+"/products", &products); err != nil {
		return nil, err
	}

	for i := range products {
		products[i].Name = c.sanitizer.Sanitize(products[i].Name)
		products[i].Description = c.sanitizer.Sanitize(products[i].Description)
	}

	return products, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.InternalError("Failed to build catalog request").WithError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Catalog request failed", slog.String("path", path), slog.String("error", err.Error()))

		return errors.GatewayUnavailableError("Failed to fetch catalog data").WithError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.GatewayUnavailableError("Failed to fetch catalog data").
			WithDetail(fmt.Sprintf("%s returned status %d", path, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.GatewayUnavailableError("Failed to read catalog response").WithError(err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return errors.GatewayUnavailableError("Catalog returned an unexpected response").WithError(err)
	}

	return nil
}
