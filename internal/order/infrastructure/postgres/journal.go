package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/orderflow/pkg/journal"
)

// JournalStore backs the delivery journal with the delivery_journal table.
// It is both the fan-out's recording sink and the relay's batch source.
type JournalStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewJournalStore(log *slog.Logger, pool *pgxpool.Pool) *JournalStore {
	return &JournalStore{log: log, pool: pool}
}

func (s *JournalStore) Record(ctx context.Context, channel string, payload []byte, sendErr string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO delivery_journal (channel, payload, status, last_error) VALUES ($1,$2,'pending',$3)`,
		channel, payload, sendErr)
	return err
}

func (s *JournalStore) LockBatch(ctx context.Context, batchSize int) ([]journal.Entry, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, `
		SELECT id, channel, payload, status, last_error, retry_count, created_at
		FROM delivery_journal
		WHERE status='pending'
		ORDER BY id
		FOR UPDATE SKIP LOCKED
		LIMIT $1`, batchSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		var e journal.Entry
		if err := rows.Scan(&e.ID, &e.Channel, &e.Payload, &e.Status, &e.LastError, &e.RetryCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, tx.Commit(ctx)
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	if _, err := tx.Exec(ctx, `UPDATE delivery_journal SET status='in_progress' WHERE id = ANY($1)`, ids); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *JournalStore) MarkSent(ctx context.Context, ids []int64) error {
	_, err := s.pool.Exec(ctx, `UPDATE delivery_journal SET status='sent' WHERE id = ANY($1)`, ids)
	return err
}

func (s *JournalStore) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE delivery_journal SET status='failed', last_error=$2, retry_count=retry_count+1 WHERE id=$1`,
		id, errMsg)
	return err
}
