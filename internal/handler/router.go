package handler

import (
	"log/slog"

	"streetbite/internal/middleware"
	"streetbite/internal/utils"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
)

// Handlers groups every HTTP handler mounted by NewRouter
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Stand    *StandHandler
	MenuItem *MenuItemHandler
	Review   *ReviewHandler
	Health   *HealthHandler
}

// NewRouter builds the gin engine: global middleware, /health at the root
// and the JSON API under /api.
func NewRouter(logger *slog.Logger, jwtUtil *utils.JWTUtil, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Security(),
		middleware.CORS(allowedOrigins),
		sloggin.New(logger),
		middleware.Metrics(),
	)

	h.Health.RegisterHealthRoutes(r)

	authMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminMW := middleware.AdminMiddleware()
	managerMW := middleware.StandManagerMiddleware()

	api := r.Group("/api")
	h.Auth.RegisterAuthRoutes(api)
	h.User.RegisterUserRoutes(api, authMW, adminMW)
	h.Stand.RegisterStandRoutes(api, authMW, managerMW)
	h.MenuItem.RegisterMenuItemRoutes(api, authMW, managerMW)
	h.Review.RegisterReviewRoutes(api, authMW)

	return r
}
