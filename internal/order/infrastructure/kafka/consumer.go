package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/orderflow/internal/order/application"
	"github.com/dmehra2102/orderflow/internal/order/domain"
	"github.com/dmehra2102/orderflow/pkg/idempotency"
	"github.com/dmehra2102/orderflow/pkg/tracing"
)

// Consumer reads the order queue and starts exactly one workflow execution
// per message. Redelivered messages are skipped by the dedup store so a
// broker retry cannot start a second execution for the same delivery.
type Consumer struct {
	log          *slog.Logger
	reader       *kafka.Reader
	orchestrator application.Orchestrator
	dedup        *idempotency.Store
	tracer       trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string,
	orchestrator application.Orchestrator, dedup *idempotency.Store) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{
		log:          log,
		reader:       r,
		orchestrator: orchestrator,
		dedup:        dedup,
		tracer:       otel.Tracer("order-consumer"),
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		key := c.dedup.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.dedup.Seen(ctx, key)
		if err != nil {
			c.log.Error("dedup check failed", "err", err)
			continue
		}
		if seen {
			c.log.Info("duplicate message skipped", "key", key)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "StartOrderExecution")

		var req domain.OrderRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			c.log.Error("order message unmarshal failed", "err", err)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		execID, err := c.orchestrator.StartExecution(msgCtx, req)
		if err != nil {
			c.log.Error("start execution failed", "product_id", req.ProductID, "err", err)
		} else {
			c.log.Info("execution started", "execution_id", execID, "product_id", req.ProductID)
		}
		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}
