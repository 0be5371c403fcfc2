package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"pulseboard/internal/config"
	"pulseboard/internal/service"
	"pulseboard/internal/transport/rest/handler"
	"pulseboard/internal/transport/rest/middleware"
	"pulseboard/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	SurveyService       *service.SurveyService
	QuestionBankService *service.QuestionBankService
	ResponseService     *service.ResponseService
	AnalyticsService    *service.AnalyticsService
	ReportService       *service.ReportService
	WSHub               *ws.Hub
	CORS                config.CORSConfig
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService, c.QuestionBankService)
	questionHandler := handler.NewQuestionHandler(c.QuestionBankService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.AnalyticsService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/join", responseHandler.Join).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/surveys/{surveyId}/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Respondent routes (require a token issued by /join)
	respondentRoutes := v1.NewRoute().Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("/surveys/{surveyId}/questions", responseHandler.Questions).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/surveys/{surveyId}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}/open", surveyHandler.Open).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}/close", surveyHandler.Close).Methods("POST", "OPTIONS")

	adminRoutes.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions/categories", questionHandler.Categories).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{questionId}", questionHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{questionId}", questionHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{questionId}", questionHandler.Delete).Methods("DELETE", "OPTIONS")

	// Analytics routes (admin only)
	adminRoutes.HandleFunc("/surveys/{surveyId}/analytics", analyticsHandler.Survey).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}/analytics/segments", analyticsHandler.Segments).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}/analytics/issues", analyticsHandler.Issues).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}/analytics/trend", analyticsHandler.Trend).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}/analytics/participation", analyticsHandler.Participation).Methods("GET", "OPTIONS")

	// Report routes (admin only)
	adminRoutes.HandleFunc("/reports", reportHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/reports/{surveyId}/snapshot", reportHandler.GetSnapshot).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
