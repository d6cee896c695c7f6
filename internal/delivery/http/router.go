package http

import (
	"net/http"

	"clinical-assistant/internal/delivery/http/handler"
	"clinical-assistant/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	consultationHandler *handler.ConsultationHandler
	analyticsHandler    *handler.AnalyticsHandler
	reportHandler       *handler.ReportHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	consultationHandler *handler.ConsultationHandler,
	analyticsHandler *handler.AnalyticsHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		consultationHandler: consultationHandler,
		analyticsHandler:    analyticsHandler,
		reportHandler:       reportHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public, throttled)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Handle("/register", r.rateLimitMiddleware.Limit(http.HandlerFunc(r.authHandler.Register))).Methods(http.MethodPost)
	auth.Handle("/login", r.rateLimitMiddleware.Limit(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)

	// Everything below needs a live session
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentSession).Methods(http.MethodGet)
	protected.HandleFunc("/auth/session/language", r.authHandler.UpdateLanguage).Methods(http.MethodPut)

	protected.HandleFunc("/doctors", r.consultationHandler.GetDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/consultations", r.consultationHandler.CreateConsultation).Methods(http.MethodPost)
	protected.HandleFunc("/consultations", r.consultationHandler.GetConsultations).Methods(http.MethodGet)
	protected.HandleFunc("/consultations/{id:[0-9]+}/report", r.consultationHandler.DownloadReport).Methods(http.MethodGet)

	protected.HandleFunc("/reports/analyze", r.reportHandler.AnalyzeReport).Methods(http.MethodPost)

	// Analytics (doctor only)
	analytics := protected.PathPrefix("/analytics").Subrouter()
	analytics.Use(middleware.RequireDoctor)
	analytics.HandleFunc("/summary", r.analyticsHandler.GetSummary).Methods(http.MethodGet)
	analytics.HandleFunc("/logins", r.analyticsHandler.GetLoginHistory).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
