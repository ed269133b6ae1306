package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bloodwraith8851/gocart/internal/service"
	"github.com/bloodwraith8851/gocart/pkg/httputil"
	"github.com/bloodwraith8851/gocart/pkg/validator"
)

// AdminHandler handles HTTP requests for store application decisions.
type AdminHandler struct {
	service *service.AdminService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// DecideRequest is the JSON request body for deciding a store application.
type DecideRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

// Decide handles POST /api/v1/admin/stores/{id}/approval.
func (h *AdminHandler) Decide(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")
	if _, ok := httputil.ParseUUID(w, storeID); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req DecideRequest
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

	store, err := h.service.Decide(r.Context(), storeID, *req.Approve)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store})
}
