package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"

	"github.com/dmehra2102/orderflow/internal/config"
	"github.com/dmehra2102/orderflow/internal/order/application"
	orderkafka "github.com/dmehra2102/orderflow/internal/order/infrastructure/kafka"
	orderdb "github.com/dmehra2102/orderflow/internal/order/infrastructure/postgres"
	"github.com/dmehra2102/orderflow/internal/workflow"
	wftemporal "github.com/dmehra2102/orderflow/internal/workflow/temporal"
	"github.com/dmehra2102/orderflow/pkg/idempotency"
	"github.com/dmehra2102/orderflow/pkg/journal"
	"github.com/dmehra2102/orderflow/pkg/logging"
	"github.com/dmehra2102/orderflow/pkg/shutdown"
	"github.com/dmehra2102/orderflow/pkg/tracing"
)

// fulfillment-service consumes the order queue and drives each message
// through the fulfillment workflow, either inline (engine) or by handing it
// to Temporal, per configuration. It also runs the delivery-journal relay.
func main() {
	log := logging.New()
	cfg := config.Load()
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, "fulfillment-service", cfg.OTLPEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := orderdb.EnsureSchema(ctx, pool); err != nil {
		log.Error("schema setup failed", "err", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	dedup := idempotency.NewStore(rdb, cfg.DedupTTL)

	queue := orderkafka.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
	defer queue.Close()
	alerts := orderkafka.NewProducer(cfg.KafkaBrokers, cfg.AlertTopic)
	defer alerts.Close()

	journalStore := orderdb.NewJournalStore(log, pool)
	dispatch := journal.NewDispatcher(log, queue, cfg.OrderTopic, cfg.AlertTopic)
	relay := journal.NewRelay(log, journalStore, dispatch)
	go func() {
		if err := relay.Run(ctx); err != nil {
			log.Error("journal relay stopped", "err", err)
		}
	}()

	store := orderdb.NewItemStore(log, pool)
	fanout := application.NewFanout(log, queue, alerts, journalStore)

	var orchestrator application.Orchestrator
	if cfg.Orchestrator == "temporal" {
		tc, err := client.Dial(client.Options{HostPort: cfg.TemporalHost})
		if err != nil {
			log.Error("temporal dial failed", "err", err)
			os.Exit(1)
		}
		defer tc.Close()
		orchestrator = wftemporal.NewStarter(log, tc, cfg.TaskQueue, cfg.WorkflowID)
	} else {
		orchestrator = workflow.NewMachine(log,
			application.NewValidator(log, store),
			application.NewPaymentGate(log),
			application.NewInventoryUpdater(log, store),
			fanout,
		)
	}

	consumer := orderkafka.NewConsumer(log, cfg.KafkaBrokers, cfg.OrderTopic, cfg.ConsumerGroup, orchestrator, dedup)
	go func() {
		if err := consumer.Run(ctx); err != nil {
			log.Error("consumer stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("fulfillment-service shutdown")
}
