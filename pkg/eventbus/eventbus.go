package eventbus

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBus is the in-process pub/sub surface shared by the modules.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// NewGoChannelBus creates an in-memory bus. Subscribers must attach
// before the HTTP server starts accepting work.
func NewGoChannelBus(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
}
