package kafka

import (
	"context"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/dmehra2102/orderflow/pkg/tracing"
)

// Producer writes order payloads to one topic. The same type serves as the
// queue writer and the alert publisher; wiring decides which topic it owns.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *Producer) Close() error { return p.writer.Close() }

// WriteMessages exposes the raw writer for the journal dispatcher.
func (p *Producer) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Producer) Enqueue(ctx context.Context, payload []byte) (string, error) {
	return p.send(ctx, payload)
}

func (p *Producer) Publish(ctx context.Context, payload []byte) (string, error) {
	return p.send(ctx, payload)
}

func (p *Producer) send(ctx context.Context, payload []byte) (string, error) {
	key := uuid.NewString()
	msg := kafka.Message{
		Topic:   p.topic,
		Key:     []byte(key),
		Value:   payload,
		Headers: tracing.InjectKafkaHeaders(ctx, nil),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return "", err
	}
	return p.topic + "/" + key, nil
}
