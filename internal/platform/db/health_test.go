package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPoolStats_HealthyFlag(t *testing.T) {
	healthy := &PoolStats{
		TotalConns:      8,
		IdleConns:       3,
		AcquiredConns:   5,
		MaxConns:        20,
		AcquireCount:    42,
		AcquireDuration: "750ms",
		Healthy:         true,
	}
	if !healthy.Healthy {
		t.Error("expected Healthy to be true")
	}

	drained := &PoolStats{MaxConns: 20, AcquireDuration: "0s"}
	if drained.Healthy {
		t.Error("expected Healthy to be false for a drained pool")
	}
}

func TestPoolStats_JSONShape(t *testing.T) {
	stats := PoolStats{
		TotalConns:      2,
		IdleConns:       1,
		AcquiredConns:   1,
		MaxConns:        10,
		AcquireCount:    17,
		AcquireDuration: "250ms",
		Healthy:         true,
	}

	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	for _, key := range []string{
		"total_conns", "idle_conns", "acquired_conns",
		"max_conns", "acquire_count", "acquire_duration", "healthy",
	} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("expected key %q in JSON output: %s", key, data)
		}
	}
}
