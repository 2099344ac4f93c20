package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notifyhub/internal/appconfig"
	"notifyhub/internal/broker"
	"notifyhub/internal/cache"
	"notifyhub/internal/httpserver"
	"notifyhub/internal/prefilter"
	"notifyhub/internal/store"
	"notifyhub/pkg/db"
	"notifyhub/pkg/logger"
	"notifyhub/pkg/redis"
)

func main() {
	cfg, err := appconfig.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.Log.Level)
	defer log.Sync()

	log.Info("starting prefilter")

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to init db", zap.Error(err))
	}
	defer dbConn.Close()

	rdb := redis.NewClient(cfg.Redis)
	defer rdb.Close()

	conn, err := broker.Dial(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to dial broker", zap.Error(err))
	}
	defer conn.Close()

	publisher, err := broker.NewPublisher(conn)
	if err != nil {
		log.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	consumer, err := broker.NewConsumer(conn, "preferences-consumer", broker.SubjectEnriched, broker.PrefetchPrefilter, log)
	if err != nil {
		log.Fatal("failed to init consumer", zap.Error(err))
	}
	defer consumer.Close()

	preferences := store.NewPreferenceStore(dbConn)
	rateLimiter := cache.NewRateLimiter(rdb)
	filter := prefilter.NewFilter(preferences, rateLimiter)
	stage := prefilter.NewStage(filter, publisher, log)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := consumer.Consume(ctx, "prefilter", stage.Handle); err != nil && err != context.Canceled {
			log.Error("consumer stopped", zap.Error(err))
		}
	}()

	router := httpserver.NewRouter(dbConn, conn)
	srv := &http.Server{Addr: cfg.Server.Port, Handler: router.Engine}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	log.Info("prefilter fully initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down prefilter")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", zap.Error(err))
	}

	log.Info("prefilter shutdown complete")
}
