package routes

import (
	"time"

	"plazoleta-api/handlers"
	"plazoleta-api/metrics"
	"plazoleta-api/middleware"
	"plazoleta-api/policy"
	"plazoleta-api/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Verifier   *middleware.Verifier
	Limiter    ratelimit.Limiter
	RateLimit  int
	RateWindow time.Duration
	Metrics    *metrics.Metrics
	Log        *logrus.Logger
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, opts Options) {
	r.GET("/health", h.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api/v1")
	{
		public.GET("/policy", h.Policy)
		public.GET("/restaurants/:id", h.GetRestaurant)
		public.GET("/restaurants/:id/dishes", h.ListDishes)
		public.GET("/dishes/:id", h.GetDish)
	}

	// ── Authenticated writes ───────────────────────────────────────
	write := r.Group("/api/v1")
	write.Use(
		middleware.Authenticate(opts.Verifier),
		middleware.RateLimit(opts.Limiter, opts.RateLimit, opts.RateWindow, opts.Log),
	)
	{
		write.POST("/restaurants", middleware.RoleRequired(policy.ActionCreateRestaurant), h.CreateRestaurant)
		write.POST("/dishes", middleware.RoleRequired(policy.ActionCreateDish), h.CreateDish)
		write.PUT("/dishes/:id", middleware.RoleRequired(policy.ActionUpdateDish), h.UpdateDish)
	}
}
