package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/artiklar/identity-api/internal/admin"
	"github.com/artiklar/identity-api/internal/auth"
	"github.com/artiklar/identity-api/internal/config"
	"github.com/artiklar/identity-api/internal/httputil"
	"github.com/artiklar/identity-api/internal/logging"
	"github.com/artiklar/identity-api/internal/profile"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	profileHandler *profile.Handler,
	adminHandler *admin.Handler,
	authMiddleware *auth.Middleware,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development. Run `swag init` to regenerate docs.
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/verify-token", authHandler.VerifyToken)
	})

	// Profile routes
	r.Route("/profile", func(r chi.Router) {
		r.Get("/data/by-name/{name}", profileHandler.ByName)
		r.Get("/data/by-id/{suid}", profileHandler.ByID)
		r.Get("/image/{id}", profileHandler.Image)

		// Uploading needs a verified identity; the image is keyed by the
		// token's public id.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/upload-image", profileHandler.Upload)
		})
	})

	// Admin routes. These were historically open; they are gated behind
	// bearer auth here and must stay that way.
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Get("/accounts", adminHandler.ListAccounts)
		r.Delete("/accounts", adminHandler.DeleteAllAccounts)
		r.Delete("/accounts/{suid}", adminHandler.DeleteAccount)
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
