package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront-be/internal/order"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventTime = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func shippedOrder() order.Order {
	return order.Order{
		ID:                "Q1W2E3",
		UserID:            "abc123xyz",
		Status:            order.StatusShipped,
		Courier:           "pathao",
		CourierTrackingID: "PTH-AAAA1111",
		Total:             decimal.RequireFromString("579.98"),
		CreatedAt:         eventTime.Add(-time.Hour),
	}
}

func expectEvent(t *testing.T, topic string, check func(OrderEvent)) mocks.MessageChecker {
	return func(msg *sarama.ProducerMessage) error {
		if msg.Topic != topic {
			return errors.New("unexpected topic " + msg.Topic)
		}
		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var ev OrderEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return err
		}
		check(ev)
		return nil
	}
}

func producerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	return cfg
}

func TestKafkaPublisher(t *testing.T) {
	ctx := context.Background()
	producer := mocks.NewSyncProducer(t, producerConfig())
	p := NewKafkaPublisherWithProducer(producer)
	p.now = func() time.Time { return eventTime }

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		assert.Equal(t, "Q1W2E3", string(key))
		return expectEvent(t, TopicOrderCreated, func(ev OrderEvent) {
			assert.Equal(t, "579.98", ev.Total)
			assert.True(t, eventTime.Equal(ev.EventTime))
		})(msg)
	})
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(expectEvent(t, TopicOrderStatusChanged, func(ev OrderEvent) {
		assert.Equal(t, "shipped", ev.Status)
		assert.Equal(t, "pending", ev.PreviousStatus)
	}))
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(expectEvent(t, TopicCourierSynced, func(ev OrderEvent) {
		assert.Equal(t, "PTH-AAAA1111", ev.TrackingID)
	}))

	o := shippedOrder()
	p.OrderCreated(ctx, o)
	p.OrderStatusChanged(ctx, o, order.StatusPending)
	p.CourierSynced(ctx, o)

	require.NoError(t, p.Close())
}

func TestKafkaPublisher_SendFailureIsSwallowed(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	p := NewKafkaPublisherWithProducer(producer)

	assert.NotPanics(t, func() { p.OrderCreated(context.Background(), shippedOrder()) })
	require.NoError(t, p.Close())
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs []string
	data []any
}

func (r *recordingBroadcaster) Broadcast(messageType string, data any, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, messageType)
	r.data = append(r.data, data)
}

func TestFanoutAndBroadcast(t *testing.T) {
	ctx := context.Background()
	a := &recordingBroadcaster{}
	b := &recordingBroadcaster{}
	f := Fanout{NewBroadcastPublisher(a), NewBroadcastPublisher(b)}

	o := shippedOrder()
	f.OrderCreated(ctx, o)
	f.OrderStatusChanged(ctx, o, order.StatusCompleted)
	f.CourierSynced(ctx, o)

	want := []string{TopicOrderCreated, TopicOrderStatusChanged, TopicCourierSynced}
	assert.Equal(t, want, a.msgs)
	assert.Equal(t, want, b.msgs)

	ev, ok := a.data[1].(OrderEvent)
	require.True(t, ok)
	assert.Equal(t, "completed", ev.PreviousStatus)
	assert.Equal(t, "Q1W2E3", ev.OrderID)
}
