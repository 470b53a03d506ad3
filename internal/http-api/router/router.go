package router

import (
	"net/http"
	"time"

	"screenspeak/internal/config"
	"screenspeak/internal/http-api/handler"
	"screenspeak/internal/http-api/middleware"
	"screenspeak/internal/http-api/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Movie   *handler.MovieHandler
	Review  *handler.ReviewHandler
	Browse  *handler.BrowseHandler
	Account *handler.AccountHandler
}

// Pinger reports whether the backing stores are reachable.
type Pinger func() error

// New builds the gin engine. Everything below /api except the auth
// endpoints requires a bearer token.
func New(cfg *config.Config, authService service.AuthService, h Handlers, limiter *middleware.UserRateLimiter, ping Pinger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/check-conn", func(c *gin.Context) {
		if ping != nil {
			if err := ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	api := r.Group("/api")
	h.Auth.RegisterRoutes(api)

	protected := api.Group("", middleware.AuthMiddleware(authService))
	throttle := limiter.Middleware()
	h.Browse.RegisterRoutes(protected)
	h.Movie.RegisterRoutes(protected, throttle)
	h.Review.RegisterRoutes(protected, throttle)
	h.Account.RegisterRoutes(protected)

	return r
}
