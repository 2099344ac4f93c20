package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"notifyhub/internal/appconfig"
	"notifyhub/internal/broker"
	"notifyhub/internal/httpserver"
	"notifyhub/internal/model"
	"notifyhub/internal/render"
	"notifyhub/internal/store"
	"notifyhub/pkg/db"
	"notifyhub/pkg/logger"
)

var channels = []model.Channel{model.ChannelEmail, model.ChannelSMS, model.ChannelPush, model.ChannelInApp}

func main() {
	cfg, err := appconfig.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.Log.Level)
	defer log.Sync()

	log.Info("starting renderer")

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to init db", zap.Error(err))
	}
	defer dbConn.Close()

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

	templates := store.NewTemplateStore(dbConn)
	engine := render.NewEngine(templates, log)

	ctx, cancel := context.WithCancel(context.Background())

	var consumers []*broker.Consumer
	for _, channel := range channels {
		queueName := "router-" + string(channel) + "-consumer"
		consumer, err := broker.NewConsumer(conn, queueName, broker.RoutedKey(string(channel)), broker.PrefetchRenderer, log)
		if err != nil {
			log.Fatal("failed to init consumer", zap.String("channel", string(channel)), zap.Error(err))
		}
		consumers = append(consumers, consumer)

		handler := func(ctx context.Context, msg amqp091.Delivery) {
			var routed model.RoutedEvent
			if err := json.Unmarshal(msg.Body, &routed); err != nil {
				log.Error("failed to decode routed event, dropping", zap.Error(err))
				_ = msg.Ack(false)
				return
			}

			rendered, err := engine.Render(ctx, routed)
			if err != nil {
				log.Error("render failed, requeueing", zap.String("event_id", routed.EventID), zap.Error(err))
				_ = msg.Nack(false, true)
				return
			}

			key := broker.DeliveryKey(string(routed.Channel))
			if err := publisher.Publish(ctx, key, rendered); err != nil {
				log.Error("failed to publish rendered message, requeueing", zap.String("event_id", routed.EventID), zap.Error(err))
				_ = msg.Nack(false, true)
				return
			}

			_ = msg.Ack(false)
		}

		go func(c *broker.Consumer, ch model.Channel) {
			if err := c.Consume(ctx, "renderer-"+string(ch), handler); err != nil && err != context.Canceled {
				log.Error("consumer stopped", zap.String("channel", string(ch)), zap.Error(err))
			}
		}(consumer, channel)
	}

	router := httpserver.NewRouter(dbConn, conn)
	srv := &http.Server{Addr: cfg.Server.Port, Handler: router.Engine}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	log.Info("renderer fully initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down renderer")
	cancel()
	for _, c := range consumers {
		c.Close()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", zap.Error(err))
	}

	log.Info("renderer shutdown complete")
}
