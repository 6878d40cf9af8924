package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/cache"
	"github.com/facuperezm/barberia-sub000/internal/clock"
	"github.com/facuperezm/barberia-sub000/internal/config"
	dbpkg "github.com/facuperezm/barberia-sub000/internal/db"
	"github.com/facuperezm/barberia-sub000/internal/infra/payment"
	"github.com/facuperezm/barberia-sub000/internal/logger"
	"github.com/facuperezm/barberia-sub000/internal/media"
	"github.com/facuperezm/barberia-sub000/internal/metrics"
	"github.com/facuperezm/barberia-sub000/internal/notify"
	"github.com/facuperezm/barberia-sub000/internal/ratelimit"
	"github.com/facuperezm/barberia-sub000/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()
	zap.ReplaceGlobals(lg)

	db, err := dbpkg.NewDB(cfg, lg)
	if err != nil {
		lg.Fatal("database", zap.Error(err))
	}

	// --------------------------------------------------
	// Optional integrations
	// --------------------------------------------------

	var limiter ratelimit.Limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	var senders []notify.Sender

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			lg.Warn("redis unavailable, using in-process rate limiter", zap.Error(err))
		} else {
			defer rdb.Close()
			limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
			senders = append(senders, notify.NewRedisPublisher(rdb))
		}
	}

	if cfg.SMTP.Enabled() {
		senders = append(senders, notify.NewEmailSender(cfg.SMTP))
	}

	infra := routes.Infra{
		DB:       db,
		Config:   cfg,
		Log:      lg,
		Metrics:  metrics.New("barberia"),
		Clock:    clock.NewRealClock(),
		AuditLog: audit.New(db),
		Limiter:  limiter,
	}

	if cfg.MercadoPago.Enabled() {
		gw, err := payment.NewMercadoPagoGateway(cfg.MercadoPago)
		if err != nil {
			lg.Fatal("mercadopago", zap.Error(err))
		}
		infra.Payments = gw
	}

	if cfg.S3.Enabled() {
		infra.Uploader = media.NewS3Uploader(cfg.S3)
	}

	auditDispatcher := audit.NewDispatcher(infra.AuditLog, lg)
	notifier := notify.NewDispatcher(lg, senders...)
	infra.Audit = auditDispatcher
	infra.Notifier = notifier

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------

	if cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, infra)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		lg.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("timezone", cfg.ShopTimezone),
			zap.Bool("payments", cfg.MercadoPago.Enabled()),
			zap.Bool("photos", cfg.S3.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("server shutdown", zap.Error(err))
	}

	// drain side effects queued by in-flight requests
	notifier.Close()
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
