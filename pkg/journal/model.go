package journal

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
)

// Entry is one undelivered message waiting for redelivery.
type Entry struct {
	ID         int64
	Channel    string
	Payload    []byte
	Status     Status
	LastError  *string
	RetryCount int
	CreatedAt  time.Time
}
