package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/orderflow/internal/config"
	"github.com/dmehra2102/orderflow/internal/order/application"
	orderhttp "github.com/dmehra2102/orderflow/internal/order/infrastructure/http"
	orderkafka "github.com/dmehra2102/orderflow/internal/order/infrastructure/kafka"
	orderdb "github.com/dmehra2102/orderflow/internal/order/infrastructure/postgres"
	"github.com/dmehra2102/orderflow/pkg/logging"
	"github.com/dmehra2102/orderflow/pkg/shutdown"
	"github.com/dmehra2102/orderflow/pkg/tracing"
)

func main() {
	log := logging.New()
	cfg := config.Load()
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, "intake-service", cfg.OTLPEndpoint, log)
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

	queue := orderkafka.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
	defer queue.Close()
	alerts := orderkafka.NewProducer(cfg.KafkaBrokers, cfg.AlertTopic)
	defer alerts.Close()

	journalStore := orderdb.NewJournalStore(log, pool)
	fanout := application.NewFanout(log, queue, alerts, journalStore)
	handler := orderhttp.NewHandler(log, fanout)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Routes(),
	}
	go func() {
		log.Info("intake-service listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("intake-service shutdown")
}
