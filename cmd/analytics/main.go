package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"notifyhub/internal/analytics"
	"notifyhub/internal/appconfig"
	"notifyhub/internal/httpserver"
	"notifyhub/internal/store"
	"notifyhub/pkg/db"
	"notifyhub/pkg/logger"
)

func main() {
	cfg, err := appconfig.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.Log.Level)
	defer log.Sync()

	log.Info("starting analytics")

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to init db", zap.Error(err))
	}
	defer dbConn.Close()

	deliveries := store.NewDeliveryStore(dbConn)
	reader := analytics.NewReader(dbConn, deliveries)

	router := httpserver.NewRouter(dbConn, nil)
	registerRoutes(router.Engine, reader, log)

	srv := &http.Server{Addr: cfg.Server.Port, Handler: router.Engine}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	log.Info("analytics fully initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down analytics")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", zap.Error(err))
	}

	log.Info("analytics shutdown complete")
}

func registerRoutes(r *gin.Engine, reader *analytics.Reader, log *zap.Logger) {
	r.GET("/analytics", func(c *gin.Context) {
		hours, _ := strconv.Atoi(c.DefaultQuery("period_hours", "24"))
		if hours <= 0 {
			hours = 24
		}
		report, err := reader.GetAnalytics(c.Request.Context(), hours)
		if err != nil {
			log.Error("get analytics failed", zap.Error(err))
			c.JSON(500, gin.H{"error": "internal error"})
			return
		}
		c.JSON(200, report)
	})

	r.GET("/users/:user_id/deliveries", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit <= 0 {
			limit = 50
		}
		rows, err := reader.GetUserDeliveries(c.Request.Context(), c.Param("user_id"), limit)
		if err != nil {
			log.Error("get user deliveries failed", zap.Error(err))
			c.JSON(500, gin.H{"error": "internal error"})
			return
		}
		c.JSON(200, rows)
	})

	r.GET("/deliveries/failed", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit <= 0 {
			limit = 50
		}
		rows, err := reader.GetFailedDeliveries(c.Request.Context(), limit)
		if err != nil {
			log.Error("get failed deliveries failed", zap.Error(err))
			c.JSON(500, gin.H{"error": "internal error"})
			return
		}
		c.JSON(200, rows)
	})

	r.GET("/events/:event_id/deliveries", func(c *gin.Context) {
		rows, err := reader.GetDeliveriesByEventID(c.Request.Context(), c.Param("event_id"))
		if err != nil {
			log.Error("get deliveries by event failed", zap.Error(err))
			c.JSON(500, gin.H{"error": "internal error"})
			return
		}
		c.JSON(200, rows)
	})
}
