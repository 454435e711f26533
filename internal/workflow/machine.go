package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmehra2102/orderflow/internal/order/application"
	"github.com/dmehra2102/orderflow/internal/order/domain"
)

type State string

const (
	StateValidating     State = "Validating"
	StatePayGate        State = "PayGate"
	StateUpdating       State = "Updating"
	StateNotifying      State = "Notifying"
	StateOrderSucceeded State = "OrderSucceeded"
	StateOrderFailed    State = "OrderFailed"
)

// Execution is one run of the order state machine.
type Execution struct {
	ID            string
	State         State
	Request       domain.OrderRequest
	Result        *domain.OrderResult
	FailureCode   string
	FailureReason string
}

// Machine sequences one order through Validating, PayGate, Updating and
// Notifying into exactly one terminal state. A handler failure at any step
// moves the execution to OrderFailed and fires the alert branch; there are
// no retries inside the machine, so the inventory decrement runs at most
// once per execution.
type Machine struct {
	log       *slog.Logger
	validator *application.Validator
	payments  *application.PaymentGate
	inventory *application.InventoryUpdater
	fanout    *application.Fanout
}

func NewMachine(log *slog.Logger, validator *application.Validator, payments *application.PaymentGate,
	inventory *application.InventoryUpdater, fanout *application.Fanout) *Machine {
	return &Machine{
		log:       log,
		validator: validator,
		payments:  payments,
		inventory: inventory,
		fanout:    fanout,
	}
}

type transition struct {
	run  func(ctx context.Context, exec *Execution) error
	next State
}

func (m *Machine) transitions() map[State]transition {
	return map[State]transition{
		StateValidating: {run: m.validate, next: StatePayGate},
		StatePayGate:    {run: m.processPayment, next: StateUpdating},
		StateUpdating:   {run: m.updateInventory, next: StateNotifying},
		StateNotifying:  {run: m.notify, next: StateOrderSucceeded},
	}
}

// Run drives req from Validating to a terminal state and returns the
// finished execution.
func (m *Machine) Run(ctx context.Context, req domain.OrderRequest) Execution {
	exec := Execution{
		ID:      uuid.NewString(),
		State:   StateValidating,
		Request: req,
	}
	steps := m.transitions()
	for {
		t, ok := steps[exec.State]
		if !ok {
			return exec
		}
		if err := t.run(ctx, &exec); err != nil {
			m.fail(ctx, &exec, err)
			return exec
		}
		exec.State = t.next
	}
}

// StartExecution lets the machine stand in for an external orchestrator:
// the execution runs to completion inline and a terminal OrderFailed is a
// completed execution, not a start error.
func (m *Machine) StartExecution(ctx context.Context, req domain.OrderRequest) (string, error) {
	exec := m.Run(ctx, req)
	m.log.Info("execution finished",
		"execution_id", exec.ID, "state", string(exec.State), "failure_code", exec.FailureCode)
	return exec.ID, nil
}

func (m *Machine) validate(ctx context.Context, exec *Execution) error {
	req, err := m.validator.Validate(ctx, exec.Request)
	if err != nil {
		return err
	}
	exec.Request = req
	return nil
}

func (m *Machine) processPayment(ctx context.Context, exec *Execution) error {
	req, err := m.payments.Process(ctx, exec.Request)
	if err != nil {
		return err
	}
	exec.Request = req
	return nil
}

func (m *Machine) updateInventory(ctx context.Context, exec *Execution) error {
	res, err := m.inventory.Update(ctx, exec.Request)
	if err != nil {
		return err
	}
	exec.Result = &res
	return nil
}

// notify never fails: delivery errors are absorbed by the fan-out's
// per-branch reporting.
func (m *Machine) notify(ctx context.Context, exec *Execution) error {
	m.fanout.Confirm(ctx, *exec.Result)
	return nil
}

func (m *Machine) fail(ctx context.Context, exec *Execution, err error) {
	f := domain.AsFailure(err)
	failedIn := exec.State
	exec.State = StateOrderFailed
	exec.FailureCode = f.Code
	exec.FailureReason = f.Reason

	m.log.Error("execution failed",
		"execution_id", exec.ID, "state", string(failedIn), "code", f.Code, "reason", f.Reason)

	m.fanout.Alert(ctx, map[string]string{
		"execution_id": exec.ID,
		"product_id":   exec.Request.ProductID,
		"quantity":     exec.Request.Quantity,
		"error":        f.Error(),
	})
}
