package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "orders.queue", cfg.OrderTopic)
	assert.Equal(t, "orders.alerts", cfg.AlertTopic)
	assert.Equal(t, "engine", cfg.Orchestrator)
	assert.Equal(t, 10*time.Minute, cfg.DedupTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ORCHESTRATOR", "temporal")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")
	t.Setenv("DEDUP_TTL", "not-a-number")

	cfg := Load()
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "temporal", cfg.Orchestrator)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	// malformed numbers fall back to the default
	assert.Equal(t, 10*time.Minute, cfg.DedupTTL)
}
