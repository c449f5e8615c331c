// Package handler exposes the shaped catalog over HTTP. Routes mirror the
// data needs of the site pages: brand directory, brand detail, filterable
// product grid, and the category sidebar.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rabukhader/Ajjawi-Website/internal/catalog"
	"github.com/rabukhader/Ajjawi-Website/internal/upstream"
)

// Handler serves the catalog API.
type Handler struct {
	svc *catalog.Service
}

// New constructs a Handler on top of the catalog service.
func New(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the catalog routes onto the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/brands", h.listBrands).Methods(http.MethodGet)
	r.HandleFunc("/api/brands/{id}", h.getBrand).Methods(http.MethodGet)
	r.HandleFunc("/api/directory", h.directory).Methods(http.MethodGet)
	r.HandleFunc("/api/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", h.listCategories).Methods(http.MethodGet)
}

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates service failures into responses. Upstream HTTP
// errors pass their status through, as the original site proxy did, so the
// frontend sees the backend's own failure mode.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var ue *upstream.Error
	switch {
	case errors.Is(err, catalog.ErrBrandNotFound):
		status = http.StatusNotFound
		message = "brand not found"
	case errors.As(err, &ue):
		switch ue.Kind {
		case upstream.KindTimeout:
			status = http.StatusGatewayTimeout
			message = "upstream request timed out"
		case upstream.KindNetwork:
			status = http.StatusBadGateway
			message = "upstream unreachable"
		default:
			status = ue.StatusCode
			message = "upstream error"
			if msg, ok := ue.Body["message"].(string); ok && msg != "" {
				message = msg
			}
		}
	}

	if status >= http.StatusInternalServerError {
		zctx.From(r.Context()).Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}
