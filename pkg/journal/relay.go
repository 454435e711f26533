package journal

import (
	"context"
	"log/slog"
	"time"
)

type Store interface {
	LockBatch(ctx context.Context, batchSize int) ([]Entry, error)
	MarkSent(ctx context.Context, ids []int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
}

// Relay periodically drains pending journal entries back onto their topics.
type Relay struct {
	log       *slog.Logger
	store     Store
	dispatch  *Dispatcher
	batchSize int
	interval  time.Duration
}

func NewRelay(log *slog.Logger, store Store, dispatch *Dispatcher) *Relay {
	return &Relay{
		log:       log,
		store:     store,
		dispatch:  dispatch,
		batchSize: 100,
		interval:  time.Second,
	}
}

func (r *Relay) Run(ctx context.Context) error {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("journal relay stopping")
			return nil
		case <-t.C:
			entries, err := r.store.LockBatch(ctx, r.batchSize)
			if err != nil {
				r.log.Error("journal lock batch error", "err", err)
				continue
			}
			if len(entries) == 0 {
				continue
			}

			sent := make([]int64, 0, len(entries))
			for _, e := range entries {
				if err := r.dispatch.Dispatch(ctx, e); err != nil {
					_ = r.store.MarkFailed(ctx, e.ID, err.Error())
					continue
				}
				sent = append(sent, e.ID)
			}
			if len(sent) > 0 {
				if err := r.store.MarkSent(ctx, sent); err != nil {
					r.log.Error("journal mark sent error", "err", err)
				}
			}
		}
	}
}
