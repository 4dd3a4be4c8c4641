package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-client/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils/response"
)

type CatalogHandler struct {
	catalog *catalog.Client
}

func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{catalog: client}
}

func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalog.Products())
	}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("id")

		product, err := h.catalog.ProductByID(productID)
		if err != nil {
			slog.Warn("Product lookup failed", slog.String("productId", productID))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalog.Categories())
	}
}

func (h *CatalogHandler) CategoryProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categoryID := r.PathValue("id")

		products, err := h.catalog.CategoryProducts(r.Context(), categoryID)
		if err != nil {
			slog.Error("Category products fetch failed",
				slog.String("categoryId", categoryID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// Refresh re-fetches the catalog view. On a fetch failure the previous view
// is kept and the error is reported to the caller.
func (h *CatalogHandler) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.catalog.Refresh(r.Context()); err != nil {
			slog.Error("Catalog refresh failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Catalog refreshed", slog.Int("products", len(h.catalog.Products())))
		response.Success(w, http.StatusOK, map[string]int{"products": len(h.catalog.Products())})
	}
}
