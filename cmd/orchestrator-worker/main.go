package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/dmehra2102/orderflow/internal/config"
	"github.com/dmehra2102/orderflow/internal/order/application"
	orderkafka "github.com/dmehra2102/orderflow/internal/order/infrastructure/kafka"
	orderdb "github.com/dmehra2102/orderflow/internal/order/infrastructure/postgres"
	wftemporal "github.com/dmehra2102/orderflow/internal/workflow/temporal"
	"github.com/dmehra2102/orderflow/pkg/logging"
	"github.com/dmehra2102/orderflow/pkg/shutdown"
)

// orchestrator-worker hosts the order fulfillment workflow and its
// activities on the configured Temporal task queue.
func main() {
	log := logging.New()
	cfg := config.Load()
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

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

	queue := orderkafka.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
	defer queue.Close()
	alerts := orderkafka.NewProducer(cfg.KafkaBrokers, cfg.AlertTopic)
	defer alerts.Close()

	store := orderdb.NewItemStore(log, pool)
	journalStore := orderdb.NewJournalStore(log, pool)
	fanout := application.NewFanout(log, queue, alerts, journalStore)

	activities := wftemporal.NewActivities(
		application.NewValidator(log, store),
		application.NewPaymentGate(log),
		application.NewInventoryUpdater(log, store),
		fanout,
	)

	tc, err := client.Dial(client.Options{HostPort: cfg.TemporalHost})
	if err != nil {
		log.Error("temporal dial failed", "err", err)
		os.Exit(1)
	}
	defer tc.Close()

	w := worker.New(tc, cfg.TaskQueue, worker.Options{})
	w.RegisterWorkflow(wftemporal.OrderFulfillmentWorkflow)
	w.RegisterActivity(activities)

	log.Info("orchestrator-worker running", "task_queue", cfg.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Error("worker stopped", "err", err)
		os.Exit(1)
	}
}
