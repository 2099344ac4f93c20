// Package httpserver exposes the liveness/readiness/metrics surface
// every stage process serves alongside its broker consumer loop.
package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
)

// Router is the thin health/readiness/metrics surface for one stage
// process. It deliberately has no CRUD routes.
type Router struct {
	Engine *gin.Engine
}

// NewRouter builds the router. db and conn may be nil for a stage
// that doesn't hold that resource (the analytics reader has no
// broker connection of its own, for instance).
func NewRouter(db *pgxpool.Pool, conn *amqp091.Connection) *Router {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				c.JSON(503, gin.H{"status": "db_not_ready", "error": err.Error()})
				return
			}
		}
		if conn != nil && conn.IsClosed() {
			c.JSON(503, gin.H{"status": "broker_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Router{Engine: r}
}

func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
