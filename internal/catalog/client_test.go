package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T, products []models.Product) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/product/all_products":
			json.NewEncoder(w).Encode(products)
		case "/product/category/full":
			json.NewEncoder(w).Encode([]models.Category{{ID: "c1", Name: "Shoes"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestRefresh(t *testing.T) {
	t.Run("Success - Published Only And Sanitized", func(t *testing.T) {
		// Arrange
		products := []models.Product{
			{
				ID:                 "p1",
				Name:               "Runner <script>alert(1)</script>",
				Description:        "<b>Fast</b> shoes",
				DiscountPriceMinor: 9900,
				AvailableQty:       3,
				Published:          true,
			},
			{ID: "p2", Name: "Hidden", Published: false},
		}
		server := catalogServer(t, products)
		defer server.Close()

		client := catalog.NewClient(server.URL, 5*time.Second)

		// Act
		err := client.Refresh(t.Context())

		// Assert
		require.NoError(t, err)
		require.Len(t, client.Products(), 1, "unpublished products dropped")
		got := client.Products()[0]
		assert.Equal(t, "Runner ", got.Name, "markup stripped")
		assert.Equal(t, "Fast shoes", got.Description)
		require.Len(t, client.Categories(), 1)
		assert.Equal(t, "Shoes", client.Categories()[0].Name)
	})

	t.Run("Failure - Keeps Previous View", func(t *testing.T) {
		// Arrange
		products := []models.Product{{ID: "p1", Name: "Runner", Published: true}}
		server := catalogServer(t, products)
		client := catalog.NewClient(server.URL, 5*time.Second)
		require.NoError(t, client.Refresh(t.Context()))
		server.Close()

		// Act
		err := client.Refresh(t.Context())

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeGatewayUnavailable, appErr.Code)
		assert.Len(t, client.Products(), 1, "stale view preserved on failed refresh")
	})
}

func TestConcurrentRefreshAndReads(t *testing.T) {
	// Arrange
	products := []models.Product{
		{ID: "p1", Name: "Runner", DiscountPriceMinor: 2500, AvailableQty: 10, Published: true},
		{ID: "p2", Name: "Sandal", DiscountPriceMinor: 5000, AvailableQty: 4, Published: true},
	}
	server := catalogServer(t, products)
	defer server.Close()

	client := catalog.NewClient(server.URL, 5*time.Second)
	require.NoError(t, client.Refresh(t.Context()))

	// Act: readers run against repeated view swaps
	done := make(chan struct{})

	var wg sync.WaitGroup

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}

				_ = client.Products()
				_ = client.Categories()

				if product, err := client.ProductByID("p1"); err == nil {
					assert.Equal(t, "Runner", product.Name)
				}
			}
		}()
	}

	for range 50 {
		require.NoError(t, client.Refresh(t.Context()))
	}

	close(done)
	wg.Wait()

	// Assert
	assert.Len(t, client.Products(), 2)
}

func TestProductByID(t *testing.T) {
	server := catalogServer(t, []models.Product{{ID: "p1", Name: "Runner", Published: true}})
	defer server.Close()

	client := catalog.NewClient(server.URL, 5*time.Second)
	require.NoError(t, client.Refresh(t.Context()))

	t.Run("Success", func(t *testing.T) {
		product, err := client.ProductByID("p1")

		require.NoError(t, err)
		assert.Equal(t, "Runner", product.Name)
	})

	t.Run("Success - Returns Independent Copy", func(t *testing.T) {
		product, err := client.ProductByID("p1")
		require.NoError(t, err)

		product.Name = "Renamed"

		again, err := client.ProductByID("p1")
		require.NoError(t, err)
		assert.Equal(t, "Runner", again.Name, "view unchanged by caller mutation")
	})

	t.Run("Failure - Unknown ID", func(t *testing.T) {
		_, err := client.ProductByID("ghost")

		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestCategoryProducts(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/category/c1/products", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Product{
			{ID: "p9", Name: "<i>Sandal</i>", Published: true},
		})
	}))
	defer server.Close()

	client := catalog.NewClient(server.URL, 5*time.Second)

	// Act
	products, err := client.CategoryProducts(t.Context(), "c1")

	// Assert
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Sandal", products[0].Name)
}
