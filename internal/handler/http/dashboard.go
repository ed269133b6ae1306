package http

import (
	"log/slog"
	"net/http"

	"github.com/bloodwraith8851/gocart/internal/service"
	"github.com/bloodwraith8851/gocart/pkg/httputil"
	"github.com/bloodwraith8851/gocart/pkg/middleware"
)

// DashboardHandler handles HTTP requests for the seller dashboard.
type DashboardHandler struct {
	service *service.DashboardService
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard HTTP handler.
func NewDashboardHandler(svc *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		logger:  logger,
	}
}

// Dashboard handles GET /api/v1/store/dashboard.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	dashboard, err := h.service.Compute(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: dashboard})
}
