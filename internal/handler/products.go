package handler

import (
	"net/http"
	"strconv"

	"github.com/rabukhader/Ajjawi-Website/internal/domain/product"
)

// listProducts serves GET /api/products. Filters come from the query string:
// repeated brandId and categoryId params, free-text q, and grouped=true|false
// to toggle the new/regular split (defaulting to the service configuration).
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	f := product.Filter{
		BrandIDs: query["brandId"],
		Query:    query.Get("q"),
	}
	for _, raw := range query["categoryId"] {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "categoryId must be an integer",
			})
			return
		}
		f.CategoryIDs = append(f.CategoryIDs, id)
	}

	grouped := h.svc.GroupsNewProducts()
	if raw := query.Get("grouped"); raw != "" {
		grouped = raw == "true"
	}

	if grouped {
		out, err := h.svc.ProductsGrouped(r.Context(), f)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	out, err := h.svc.Products(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// listCategories serves GET /api/categories, name-sorted for the sidebar.
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
