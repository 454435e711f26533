package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Dispatcher re-sends a journaled entry to the topic its channel maps to.
type Dispatcher struct {
	log        *slog.Logger
	producer   Producer
	queueTopic string
	alertTopic string
}

func NewDispatcher(log *slog.Logger, producer Producer, queueTopic, alertTopic string) *Dispatcher {
	return &Dispatcher{log: log, producer: producer, queueTopic: queueTopic, alertTopic: alertTopic}
}

func (d *Dispatcher) Dispatch(ctx context.Context, entry Entry) error {
	var topic string
	switch entry.Channel {
	case "queue":
		topic = d.queueTopic
	case "alert":
		topic = d.alertTopic
	default:
		return fmt.Errorf("unknown delivery channel %q", entry.Channel)
	}

	msg := kafka.Message{
		Topic: topic,
		Value: entry.Payload,
		Headers: []kafka.Header{
			{Key: "redelivery", Value: []byte("true")},
		},
	}
	if err := d.producer.WriteMessages(ctx, msg); err != nil {
		d.log.Error("journal dispatch failed", "entry_id", entry.ID, "channel", entry.Channel, "err", err)
		return err
	}
	d.log.Info("journal entry redelivered", "entry_id", entry.ID, "channel", entry.Channel)
	return nil
}
