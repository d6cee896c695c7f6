package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"clinical-assistant/internal/delivery/http/middleware"
	"clinical-assistant/internal/usecase"
	"clinical-assistant/pkg/response"
)

// MaxReportUploadSize caps uploaded PDF reports
const MaxReportUploadSize = 10 << 20

type ReportHandler struct {
	reportUsecase usecase.ReportAnalyzerUsecase
}

func NewReportHandler(reportUsecase usecase.ReportAnalyzerUsecase) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
	}
}

func (h *ReportHandler) AnalyzeReport(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxReportUploadSize)
	if err := r.ParseMultipartForm(MaxReportUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart upload", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "file is required", nil)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		response.Error(w, http.StatusBadRequest, "Only PDF files are supported", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read upload", nil)
		return
	}

	analysis, err := h.reportUsecase.Analyze(r.Context(), header.Filename, data, session.Language)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoExtractableText):
			response.Error(w, http.StatusUnprocessableEntity, "Could not extract text from PDF", nil)
		default:
			response.InternalServerError(w, "Failed to analyze report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Report analyzed successfully", analysis)
}
