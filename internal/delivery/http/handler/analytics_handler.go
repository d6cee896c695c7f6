package handler

import (
	"net/http"

	"clinical-assistant/internal/usecase"
	"clinical-assistant/pkg/response"
)

type AnalyticsHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUsecase: analyticsUsecase,
	}
}

func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsUsecase.Summary(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute analytics")
		return
	}

	response.Success(w, http.StatusOK, "Analytics retrieved successfully", summary)
}

func (h *AnalyticsHandler) GetLoginHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.analyticsUsecase.LoginHistory(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get login history")
		return
	}

	response.Success(w, http.StatusOK, "Login history retrieved successfully", history)
}
