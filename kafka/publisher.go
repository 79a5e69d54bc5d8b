package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	orderdomain "github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/internal/syncer"
	"github.com/shipdrop/backend/pkg/logger"
)

// Publisher wraps a Kafka sync producer. A nil *Publisher is valid and
// drops every event, which lets the backend run without brokers.
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// OrderCreated publishes an order.created event
func (p *Publisher) OrderCreated(ctx context.Context, order *orderdomain.Order) error {
	if p == nil {
		return nil
	}
	event := OrderCreatedEvent{
		EventType:    EventTypeOrderCreated,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		WholesalerID: order.WholesalerID,
		TotalAmount:  order.TotalAmount,
		ItemCount:    len(order.Items),
	}
	return p.publish(ctx, TopicOrders, EventTypeOrderCreated, order.ID, &event.EventID, &event.Timestamp, &event)
}

// OrderStatusChanged publishes an order.status_changed event
func (p *Publisher) OrderStatusChanged(ctx context.Context, orderID, from, to string) error {
	if p == nil {
		return nil
	}
	event := OrderStatusChangedEvent{
		EventType: EventTypeOrderStatusChanged,
		OrderID:   orderID,
		From:      from,
		To:        to,
	}
	return p.publish(ctx, TopicOrders, EventTypeOrderStatusChanged, orderID, &event.EventID, &event.Timestamp, &event)
}

// InventorySynced publishes an inventory.synced event
func (p *Publisher) InventorySynced(ctx context.Context, syncID, status string, results []syncer.WholesalerResult) error {
	if p == nil {
		return nil
	}
	event := InventorySyncedEvent{
		EventType: EventTypeInventorySynced,
		SyncID:    syncID,
		Status:    status,
	}
	for _, r := range results {
		event.Results = append(event.Results, SyncOutcome{
			WholesalerID: r.WholesalerID,
			Name:         r.Name,
			Status:       r.Status,
			ProductCount: r.ProductCount,
			Error:        r.Error,
		})
	}
	return p.publish(ctx, TopicInventory, EventTypeInventorySynced, syncID, &event.EventID, &event.Timestamp, &event)
}

// publish stamps event metadata, injects the trace context into headers,
// and sends the message.
func (p *Publisher) publish(ctx context.Context, topic, eventType, key string, eventID *string, timestamp *time.Time, payload interface{}) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("event.type", eventType),
		),
	)
	defer span.End()

	*eventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	*timestamp = time.Now()
	span.SetAttributes(attribute.String("event.id", *eventID))

	eventBytes, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(*eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Logger.Info().
		Str("event_id", *eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
