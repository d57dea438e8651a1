// Package eventbus provides the watermill publisher/subscriber pair the
// modules talk over: NATS core when a URL is configured, an in-process
// gochannel otherwise.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/trip-scorer/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// EventBus publishes and subscribes to topics.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// eventBus pairs a publisher with a subscriber over the same transport.
type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// New creates the event bus described by cfg.
func New(cfg config.NATSConfig, logger *slog.Logger) (EventBus, error) {
	watermillLogger := watermill.NewSlogLogger(logger)

	if cfg.URL == "" {
		logger.Info("NATS URL not configured, using in-process event bus")
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermillLogger)
		return &eventBus{publisher: ch, subscriber: ch, logger: logger}, nil
	}

	natsOptions := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Name("trip-scorer"),
	}
	if cfg.NKeySeed != "" {
		opt, err := nkeyOption(cfg.NKeySeed)
		if err != nil {
			return nil, err
		}
		natsOptions = append(natsOptions, opt)
	}

	marshaler := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			Marshaler:   marshaler,
			NatsOptions: natsOptions,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		logger.Error("Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              cfg.URL,
			QueueGroupPrefix: "trip-scorer",
			Unmarshaler:      marshaler,
			NatsOptions:      natsOptions,
			JetStream:        nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		logger.Error("Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	return &eventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

// nkeyOption authenticates the NATS connection with a user nkey seed.
func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse nkey seed: %w", err)
	}
	publicKey, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	return nc.Nkey(publicKey, func(nonce []byte) ([]byte, error) {
		return kp.Sign(nonce)
	}), nil
}

func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		eb.logger.Debug("Publishing message",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
			slog.String("correlation_id", middleware.MessageCorrelationID(msg)),
		)
	}
	if err := eb.publisher.Publish(topic, messages...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.Info("Subscribing to topic", slog.String("topic", topic))
	return eb.subscriber.Subscribe(ctx, topic)
}

// Close closes both halves. The gochannel transport shares one value for both.
func (eb *eventBus) Close() error {
	pubErr := eb.publisher.Close()
	if any(eb.subscriber) == any(eb.publisher) {
		return pubErr
	}
	subErr := eb.subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}

// NewMessage marshals payload to JSON and carries the correlation id from ctx,
// minting one when absent.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	correlationID := CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, msg)
	msg.SetContext(ctx)

	return msg, nil
}

// PublishJSON marshals payload and publishes it to topic.
func PublishJSON(ctx context.Context, pub message.Publisher, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return err
	}
	return pub.Publish(topic, msg)
}

type correlationKey struct{}

// WithCorrelationID stores id on ctx for messages published downstream.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFromContext returns the correlation id stored on ctx, if any.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
