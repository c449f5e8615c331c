package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rabukhader/Ajjawi-Website/internal/domain/brand"
	"github.com/rabukhader/Ajjawi-Website/internal/domain/product"
)

// brandResponse is a brand shaped for the frontend: DisplayName is already
// resolved for the requested language so templates never re-implement the
// fallback rules.
type brandResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	NameEnglish  string            `json:"nameEnglish,omitempty"`
	DisplayName  string            `json:"displayName"`
	Logo         string            `json:"logo"`
	Description  string            `json:"description"`
	Products     []product.Product `json:"products,omitempty"`
	ProductCount int               `json:"productCount,omitempty"`
}

func toBrandResponse(b brand.Brand, lang brand.Language) brandResponse {
	return brandResponse{
		ID:          b.ID,
		Name:        b.Name,
		NameEnglish: b.NameEnglish,
		DisplayName: brand.DisplayName(&b, lang),
		Logo:        b.Logo,
		Description: b.Description,
	}
}

func requestLanguage(r *http.Request) brand.Language {
	return brand.ParseLanguage(r.URL.Query().Get("lang"))
}

// listBrands serves GET /api/brands: every brand in display order.
func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.svc.Brands(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	lang := requestLanguage(r)
	out := make([]brandResponse, len(brands))
	for i, b := range brands {
		out[i] = toBrandResponse(b, lang)
	}
	writeJSON(w, http.StatusOK, out)
}

// getBrand serves GET /api/brands/{id}: one brand with its visible products.
func (h *Handler) getBrand(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	b, err := h.svc.BrandByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := toBrandResponse(*b, requestLanguage(r))
	if b.Products != nil {
		resp.Products = product.FilterSort(b.Products, product.Filter{})
	} else {
		resp.Products, err = h.svc.BrandProducts(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}
	resp.ProductCount = len(resp.Products)
	writeJSON(w, http.StatusOK, resp)
}

// directory serves GET /api/directory: brands with visible product counts,
// brands with nothing to show omitted.
func (h *Handler) directory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Directory(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	lang := requestLanguage(r)
	out := make([]brandResponse, len(entries))
	for i, e := range entries {
		out[i] = toBrandResponse(e.Brand, lang)
		out[i].ProductCount = e.ProductCount
	}
	writeJSON(w, http.StatusOK, out)
}
