package main

import (
	"go.uber.org/zap"

	"notifyhub/internal/delivery"
	"notifyhub/internal/model"
	"notifyhub/internal/transport"
)

func main() {
	delivery.Run(model.ChannelEmail, func(log *zap.Logger) transport.Adapter {
		return transport.NewEmailAdapter(log)
	})
}
