package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodhub/configs"
	"foodhub/pkg/cache"
	"foodhub/pkg/events"
	"foodhub/pkg/payment"
	"foodhub/routes"
	"foodhub/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()
	log := configs.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.WithError(err).Fatal("database")
	}
	db := configs.DB()

	// migrate + seed
	if err := configs.Migrate(db); err != nil {
		log.WithError(err).Fatal("migrate failed")
	}
	if err := configs.SeedSuperuser(db, cfg); err != nil {
		log.WithError(err).Fatal("seed superuser failed")
	}
	if err := configs.SeedCuisines(db); err != nil {
		log.WithError(err).Fatal("seed cuisines failed")
	}

	// Redis cache (optional)
	var catalogCache *cache.Cache
	if cfg.RedisAddr != "" {
		c, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, catalog cache disabled")
		} else {
			catalogCache = c
			defer c.Close()
		}
	}

	// Order events: websocket เสมอ + kafka ถ้าตั้งค่าไว้
	hub := ws.NewOrderHub(log)
	go hub.Run(ctx)
	publishers := events.Fanout{hub}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewKafkaProducer(cfg.KafkaBrokers, 3)
		if err != nil {
			log.WithError(err).Warn("kafka unavailable, order events stay in-process")
		} else {
			kp := events.NewKafkaPublisher(producer, cfg.KafkaOrderTopic, log)
			defer kp.Close()
			publishers = append(publishers, kp)
		}
	}

	gw := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	if !cfg.PaymentsConfigured() {
		log.Warn("STRIPE_SECRET_KEY/STRIPE_WEBHOOK_SECRET not set, checkout is disabled")
	}

	// HTTP
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		DB: db, Cfg: cfg, Log: log, Cache: catalogCache,
		Gateway: gw, Events: publishers, Hub: hub,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("bye")
}
