package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/app/handler"
	"github.com/pranav06082004/Authen-X/internal/app/service"
	"github.com/pranav06082004/Authen-X/internal/middleware"
)

// Init builds the HTTP router. All origins are permitted and preflight
// requests are answered with permissive headers, matching the public API
// contract.
func Init(logger *zap.Logger, auth service.AuthIface, analysisService service.AnalysisServiceIface, rdb *redis.Client, rateLimit int) *chi.Mux {
	analyzeHandler := handler.NewAnalyze(analysisService, logger)
	authHandler := handler.NewAuth(auth, logger)
	historyHandler := handler.NewHistory(analysisService, logger)
	adminHandler := handler.NewAdmin(analysisService, logger)
	logsHandler := handler.NewLogs(logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.WithGZIP)

	r.Get("/ping", analyzeHandler.HandlePing)
	r.Get("/api/health", analyzeHandler.HandleHealth)

	r.Post("/api/auth/register", authHandler.HandleRegister)
	r.Post("/api/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithBearerAuth(auth))
		r.With(middleware.WithRateLimit(rdb, rateLimit, logger)).Post("/api/analyze", analyzeHandler.HandleAnalyze)
		r.Get("/api/history", historyHandler.HandleHistory)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithBearerAuth(auth))
		r.Use(middleware.RequireAdmin)
		r.Get("/api/admin/stats", adminHandler.HandleStats)
		r.Get("/api/admin/users", adminHandler.HandleListUsers)
		r.Delete("/api/admin/users/{id}", adminHandler.HandleDeleteUser)
		r.Get("/api/admin/logs", logsHandler.HandleStreamLogs)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
