package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plazoleta-api/config"
	"plazoleta-api/events"
	"plazoleta-api/handlers"
	"plazoleta-api/identity"
	"plazoleta-api/metrics"
	"plazoleta-api/middleware"
	"plazoleta-api/ratelimit"
	"plazoleta-api/routes"
	"plazoleta-api/storage"
	"plazoleta-api/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("invalid logger configuration")
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	log.WithField("driver", cfg.DBDriver).Info("database connected and migrated")

	var limiter ratelimit.Limiter
	redisClient, err := config.NewRedis(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		if limiter, err = ratelimit.NewRedisLimiter(redisClient, nil); err != nil {
			log.WithError(err).Fatal("failed to build rate limiter")
		}
		log.WithField("addr", cfg.RedisAddr).Info("write rate limiting enabled")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if writer := config.NewKafkaWriter(cfg); writer != nil {
		defer writer.Close()
		publisher = events.NewKafkaPublisher(writer)
		log.WithField("topic", cfg.KafkaTopic).Info("menu events enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	restaurants := storage.NewRestaurantRepository(db)
	dishes := storage.NewDishRepository(db)
	lookup := identity.NewClient(cfg.UserServiceURL, cfg.UserServiceTimeout, log)

	h := handlers.New(handlers.Deps{
		Restaurants:      usecase.NewRestaurantService(restaurants, lookup),
		Dishes:           usecase.NewDishService(dishes, restaurants, lookup),
		RestaurantReader: restaurants,
		DishReader:       dishes,
		Events:           publisher,
		Metrics:          m,
		Log:              log,
	})

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSOrigins),
		middleware.Instrument(m),
	)
	routes.SetupRoutes(r, h, routes.Options{
		Verifier:   middleware.NewVerifier(cfg.JWTSecret),
		Limiter:    limiter,
		RateLimit:  cfg.RateLimitRequests,
		RateWindow: cfg.RateLimitWindow,
		Metrics:    m,
		Log:        log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
