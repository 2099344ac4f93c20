package delivery

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
	"notifyhub/internal/model"
	"notifyhub/internal/store"
	"notifyhub/internal/transport"
	"notifyhub/pkg/db"
	"notifyhub/pkg/logger"
	"notifyhub/pkg/redis"
)

// Run wires and runs a single-channel delivery worker process: every
// cmd/worker-<channel> binary is a thin wrapper around this, since the
// four channels share identical wiring and differ only in their
// transport adapter.
func Run(channel model.Channel, newAdapter func(*zap.Logger) transport.Adapter) {
	cfg, err := appconfig.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.Log.Level)
	defer log.Sync()

	log.Info("starting delivery worker", zap.String("channel", string(channel)))

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

	prefetch := broker.PrefetchWorker
	if channel == model.ChannelInApp {
		prefetch = broker.PrefetchInApp
	}

	queueName := string(channel) + "-worker-consumer"
	consumer, err := broker.NewConsumer(conn, queueName, broker.DeliveryKey(string(channel)), prefetch, log)
	if err != nil {
		log.Fatal("failed to init consumer", zap.Error(err))
	}
	defer consumer.Close()

	deliveries := store.NewDeliveryStore(dbConn)
	attempts := cache.NewAttemptCounter(rdb)
	broadcaster := cache.NewBroadcaster(rdb)
	adapter := newAdapter(log)
	worker := NewWorker(adapter, deliveries, attempts, broadcaster, publisher, log)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := consumer.Consume(ctx, string(channel)+"-worker", worker.Handle); err != nil && err != context.Canceled {
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

	log.Info("delivery worker fully initialized and running", zap.String("channel", string(channel)))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down delivery worker", zap.String("channel", string(channel)))
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", zap.Error(err))
	}

	log.Info("delivery worker shutdown complete", zap.String("channel", string(channel)))
}
