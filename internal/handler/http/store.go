package http

import (
	"log/slog"
	"net/http"

	"github.com/bloodwraith8851/gocart/internal/service"
	"github.com/bloodwraith8851/gocart/pkg/httputil"
	"github.com/bloodwraith8851/gocart/pkg/middleware"
)

// maxMultipartBytes caps multipart request bodies (form fields plus images).
const maxMultipartBytes = 25 << 20

// multipartMemory is how much of a parsed multipart body is held in memory
// before spilling to disk.
const multipartMemory = 8 << 20

// StoreHandler handles HTTP requests for the store application lifecycle.
type StoreHandler struct {
	service *service.SellerService
	logger  *slog.Logger
}

// NewStoreHandler creates a new store HTTP handler.
func NewStoreHandler(svc *service.SellerService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		service: svc,
		logger:  logger,
	}
}

// Apply handles POST /api/v1/store. The body is a multipart form carrying
// the application fields and the logo image under the "image" field.
func (h *StoreHandler) Apply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart form: " + err.Error()},
		})
		return
	}

	input := &service.ApplyInput{
		Name:        r.FormValue("name"),
		Username:    r.FormValue("username"),
		Description: r.FormValue("description"),
		Email:       r.FormValue("email"),
		Contact:     r.FormValue("contact"),
		Address:     r.FormValue("address"),
	}

	logo, header, err := r.FormFile("image")
	if err == nil {
		defer func() { _ = logo.Close() }()
		input.Logo = logo
		input.LogoFileName = header.Filename
	}

	userID := middleware.UserIDFromContext(r.Context())
	status, created, err := h.service.Apply(r.Context(), userID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Re-applying returns the existing application's status, whatever it is.
	if !created {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": status}})
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{
		"status":  status,
		"message": "applied, waiting for approval",
	}})
}

// Status handles GET /api/v1/store.
func (h *StoreHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	status, err := h.service.Status(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": status}})
}

// IsSeller handles GET /api/v1/store/is-seller. Only approved sellers get a
// profile back; everyone else gets an authorization error.
func (h *StoreHandler) IsSeller(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	store, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"is_seller":  true,
		"store_info": store,
	}})
}
