package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/internal/syncer"
)

func TestNilPublisherDropsEvents(t *testing.T) {
	var p *Publisher
	ctx := context.Background()

	assert.NoError(t, p.OrderCreated(ctx, &orderdomain.Order{ID: "ORD-1"}))
	assert.NoError(t, p.OrderStatusChanged(ctx, "ORD-1", "pending", "processing"))
	assert.NoError(t, p.InventorySynced(ctx, "sync-1", "synced", nil))
	assert.NoError(t, p.Close())
}

func newMockPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	t.Helper()
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	return &Publisher{producer: producer}, producer
}

func TestOrderCreatedCarriesEventMetadata(t *testing.T) {
	p, producer := newMockPublisher(t)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicOrders {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}

		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "ORD-1" {
			return fmt.Errorf("unexpected key %q", key)
		}

		headerTypes := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headerTypes[string(h.Key)] = string(h.Value)
		}
		if headerTypes["event_type"] != EventTypeOrderCreated {
			return fmt.Errorf("missing event_type header")
		}

		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event OrderCreatedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.EventID == "" || event.Timestamp.IsZero() {
			return fmt.Errorf("event metadata not stamped: %+v", event)
		}
		if event.OrderID != "ORD-1" || event.ItemCount != 2 {
			return fmt.Errorf("unexpected payload: %+v", event)
		}
		return nil
	})

	err := p.OrderCreated(context.Background(), &orderdomain.Order{
		ID:           "ORD-1",
		CustomerName: "Jamie Doe",
		WholesalerID: 3,
		TotalAmount:  59.80,
		Items:        []orderdomain.OrderItem{{ProductID: 1}, {ProductID: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestOrderStatusChangedGoesToOrdersTopic(t *testing.T) {
	p, producer := newMockPublisher(t)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event OrderStatusChangedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.From != "pending" || event.To != "processing" {
			return fmt.Errorf("unexpected transition: %+v", event)
		}
		return nil
	})

	err := p.OrderStatusChanged(context.Background(), "ORD-1", "pending", "processing")
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestInventorySyncedIncludesPerWholesalerOutcomes(t *testing.T) {
	p, producer := newMockPublisher(t)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicInventory {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event InventorySyncedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if len(event.Results) != 2 {
			return fmt.Errorf("expected 2 outcomes, got %d", len(event.Results))
		}
		return nil
	})

	err := p.InventorySynced(context.Background(), "sync-1", "error", []syncer.WholesalerResult{
		{WholesalerID: 1, Name: "Acme", Status: "connected", ProductCount: 12},
		{WholesalerID: 2, Name: "Globex", Status: "error", Error: "connection refused"},
	})
	require.NoError(t, err)
	require.NoError(t, producer.Close())
}

func TestPublishFailureSurfacesError(t *testing.T) {
	p, producer := newMockPublisher(t)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := p.OrderStatusChanged(context.Background(), "ORD-1", "pending", "processing")
	assert.Error(t, err)
	require.NoError(t, producer.Close())
}
