package events

import (
	"context"
	"encoding/json"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/order"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// KafkaPublisher writes order events to Kafka. Send failures are logged and dropped;
// they never fail the order operation that triggered them.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	now      func() time.Time
}

func NewKafkaPublisher(brokers []string) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return NewKafkaPublisherWithProducer(producer), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, now: time.Now}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, o order.Order) {
	p.publish(ctx, newOrderEvent(TopicOrderCreated, o, "", p.now()))
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, o order.Order, previous order.Status) {
	p.publish(ctx, newOrderEvent(TopicOrderStatusChanged, o, previous, p.now()))
}

func (p *KafkaPublisher) CourierSynced(ctx context.Context, o order.Order) {
	p.publish(ctx, newOrderEvent(TopicCourierSynced, o, "", p.now()))
}

func (p *KafkaPublisher) publish(ctx context.Context, event OrderEvent) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "events"),
		zap.String("topic", event.Type),
		zap.String("order_id", event.OrderID),
	)

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to marshal event", zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: event.Type,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		log.Error("failed to send message to kafka", zap.Error(err))
		return
	}

	log.Info("event published to kafka",
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
