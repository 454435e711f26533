package temporal

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/dmehra2102/orderflow/internal/order/domain"
)

// Activity names as registered by the fulfillment worker.
const (
	ActivityValidate        = "Validate"
	ActivityProcessPayment  = "ProcessPayment"
	ActivityUpdateInventory = "UpdateInventory"
	ActivityNotify          = "Notify"
	ActivityAlertFailure    = "AlertFailure"
)

// OrderFulfillmentWorkflow is the order state machine hosted on Temporal:
// Validate, ProcessPayment, UpdateInventory, Notify, with any step failure
// routed through the alert activity before the run fails. MaximumAttempts
// is pinned to 1 so the inventory decrement can never be replayed by the
// engine's own retry policy.
func OrderFulfillmentWorkflow(ctx workflow.Context, req domain.OrderRequest) (domain.OrderResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order fulfillment started", "ProductID", req.ProductID)

	opts := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, opts)

	var validated domain.OrderRequest
	if err := workflow.ExecuteActivity(ctx, ActivityValidate, req).Get(ctx, &validated); err != nil {
		return domain.OrderResult{}, failExecution(ctx, req, err)
	}

	var paid domain.OrderRequest
	if err := workflow.ExecuteActivity(ctx, ActivityProcessPayment, validated).Get(ctx, &paid); err != nil {
		return domain.OrderResult{}, failExecution(ctx, validated, err)
	}

	var result domain.OrderResult
	if err := workflow.ExecuteActivity(ctx, ActivityUpdateInventory, paid).Get(ctx, &result); err != nil {
		return domain.OrderResult{}, failExecution(ctx, paid, err)
	}

	// notification failures are absorbed; the order already succeeded
	if err := workflow.ExecuteActivity(ctx, ActivityNotify, result).Get(ctx, nil); err != nil {
		logger.Error("order confirmation failed", "Error", err)
	}

	logger.Info("order fulfillment succeeded", "ProductID", req.ProductID)
	return result, nil
}

// failExecution fires the alert branch on a disconnected context so the
// alert still goes out when the workflow itself is being failed.
func failExecution(ctx workflow.Context, req domain.OrderRequest, cause error) error {
	logger := workflow.GetLogger(ctx)
	logger.Error("order fulfillment failed", "ProductID", req.ProductID, "Error", cause)

	alertCtx, _ := workflow.NewDisconnectedContext(ctx)
	alertCtx = workflow.WithActivityOptions(alertCtx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	})
	if err := workflow.ExecuteActivity(alertCtx, ActivityAlertFailure, req, cause.Error()).Get(alertCtx, nil); err != nil {
		logger.Error("failure alert could not be delivered", "Error", err)
	}
	return cause
}
