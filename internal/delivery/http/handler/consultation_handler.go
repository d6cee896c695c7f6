package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/delivery/http/middleware"
	"clinical-assistant/internal/usecase"
	"clinical-assistant/pkg/response"
	"clinical-assistant/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const missingFieldsMessage = "Please fill all required fields"

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
		log:                 log,
	}
}

func (h *ConsultationHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Doctors retrieved successfully", h.consultationUsecase.Doctors())
}

func (h *ConsultationHandler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	// Booking failures share one message; the detail stays in the log.
	if err := h.validator.Validate(&req); err != nil {
		h.log.WithField("fields", h.validator.FormatValidationErrors(err)).Info("Rejected consultation request")
		response.Error(w, http.StatusBadRequest, missingFieldsMessage, nil)
		return
	}

	consultation, err := h.consultationUsecase.Book(r.Context(), session.Username, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidConsultation):
			h.log.Infof("Rejected consultation request: %v", err)
			response.Error(w, http.StatusBadRequest, missingFieldsMessage, nil)
		default:
			response.InternalServerError(w, "Failed to book consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation booked successfully", consultation)
}

func (h *ConsultationHandler) GetConsultations(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	consultations, err := h.consultationUsecase.ListFor(r.Context(), session.Username, session.Role)
	if err != nil {
		response.InternalServerError(w, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	report, err := h.consultationUsecase.RenderReport(r.Context(), id, session.Username, session.Role)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrConsultationNotFound):
			response.NotFound(w, "Consultation not found")
		default:
			response.InternalServerError(w, "Failed to generate report")
		}
		return
	}

	response.Attachment(w, "application/pdf", fmt.Sprintf("consultation_%d.pdf", id), report)
}
