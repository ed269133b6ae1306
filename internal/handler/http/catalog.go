package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bloodwraith8851/gocart/internal/service"
	"github.com/bloodwraith8851/gocart/pkg/httputil"
	"github.com/bloodwraith8851/gocart/pkg/middleware"
	"github.com/bloodwraith8851/gocart/pkg/validator"
)

// CatalogHandler handles HTTP requests for a seller's product catalog.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ToggleStockRequest is the JSON request body for toggling product stock.
type ToggleStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// AddProduct handles POST /api/v1/store/products. The body is a multipart
// form carrying the product fields and one or more images under the
// "images" field, primary image first.
func (h *CatalogHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart form: " + err.Error()},
		})
		return
	}

	input := &service.AddProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		MRP:         r.FormValue("mrp"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "unreadable image: " + err.Error()},
				})
				return
			}
			defer func() { _ = file.Close() }()
			input.Images = append(input.Images, service.ImageInput{
				Data:     file,
				FileName: header.Filename,
			})
		}
	}

	userID := middleware.UserIDFromContext(r.Context())
	product, err := h.service.AddProduct(r.Context(), userID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// ListProducts handles GET /api/v1/store/products.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	products, err := h.service.ListProducts(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// ToggleStock handles POST /api/v1/store/stock-toggle.
func (h *CatalogHandler) ToggleStock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ToggleStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	inStock, err := h.service.ToggleStock(r.Context(), userID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"product_id": req.ProductID,
		"in_stock":   inStock,
	}})
}
