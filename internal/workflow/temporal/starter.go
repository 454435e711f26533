package temporal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// Starter hands one order request to the Temporal server as a new workflow
// execution. It implements the orchestrator port the queue consumer uses.
type Starter struct {
	log        *slog.Logger
	client     client.Client
	taskQueue  string
	workflowID string
}

func NewStarter(log *slog.Logger, c client.Client, taskQueue, workflowID string) *Starter {
	return &Starter{log: log, client: c, taskQueue: taskQueue, workflowID: workflowID}
}

func (s *Starter) StartExecution(ctx context.Context, req domain.OrderRequest) (string, error) {
	opts := client.StartWorkflowOptions{
		ID:        s.workflowID + "-" + uuid.NewString(),
		TaskQueue: s.taskQueue,
	}
	run, err := s.client.ExecuteWorkflow(ctx, opts, OrderFulfillmentWorkflow, req)
	if err != nil {
		return "", err
	}
	s.log.Info("workflow execution started", "workflow_id", run.GetID(), "run_id", run.GetRunID())
	return run.GetID(), nil
}
