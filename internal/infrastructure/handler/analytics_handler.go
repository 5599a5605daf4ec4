package handler

import (
	"net/http"

	"github.com/dharmendra-007/personal-finance-tracker/internal/application/service"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/logger"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// AnalyticsHandler serves the derived dashboard view: summary stats,
// the six-month expense series and the advisory insights.
type AnalyticsHandler struct {
	service *service.AnalyticsService
	logger  logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc *service.AnalyticsService, log logger.Logger) *AnalyticsHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &AnalyticsHandler{
		service: svc,
		logger:  log,
	}
}

// RegisterRoutes registers the analytics handler routes
func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/analytics", h.GetOverview).Methods(http.MethodGet)

	h.logger.Info("Analytics routes registered", map[string]interface{}{
		"routes": []string{"GET /api/analytics"},
	})
}

// GetOverview recomputes the aggregate view from the full collection.
func (h *AnalyticsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute analytics", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	respond(w, http.StatusOK, "Analytics computed successfully", overview)
}
