package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gestionimagenes/backend/internal/auth"
	"github.com/gestionimagenes/backend/internal/media"
	"github.com/gestionimagenes/backend/internal/transport/middleware"
	"github.com/gestionimagenes/backend/internal/transport/swagger"
	"github.com/gestionimagenes/backend/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes wires the public routes (register, login, file serving)
// and the protected routes behind the auth middleware. Paths are kept at
// the root, matching what the existing frontend calls.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	mediaHandler *media.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)
	roleGate := auth.NewRoleAuthorization(logger)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Public routes
	router.Post("/register", userHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Get("/uploads/{filename}", mediaHandler.ServeFile)

	// Protected routes
	router.Group(func(pr chi.Router) {
		pr.Use(authHandler.AuthMiddleware)

		pr.Get("/users/me", userHandler.GetCurrentUser)
		pr.Get("/images", mediaHandler.ListImages)
		pr.Post("/upload", mediaHandler.Upload)

		pr.Group(func(cr chi.Router) {
			cr.Use(roleGate.RequireRoles(auth.RoleAdmin, auth.RoleCoches))
			cr.Post("/upload_car_images", mediaHandler.UploadCarImages)
		})

		pr.Group(func(cr chi.Router) {
			cr.Use(roleGate.RequireRoles(auth.RoleAdmin))
			cr.Get("/get_car_images", mediaHandler.GetCarImages)
		})
	})
}
