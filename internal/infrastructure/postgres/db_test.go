package postgres

import (
	"context"
	"testing"
	"time"
)

func TestNewPoolInvalidURL(t *testing.T) {
	cfg := PoolConfig{URL: "not-a-url", MaxConns: 5, MinConns: 1}
	if _, err := NewPool(context.Background(), cfg); err == nil {
		t.Fatalf("expected error when parsing invalid URL")
	}
}

func TestNewPoolPingFailure(t *testing.T) {
	cfg := PoolConfig{
		URL:            "postgres://invalid:5432/db",
		MaxConns:       1,
		ConnectTimeout: 500 * time.Millisecond,
	}
	if _, err := NewPool(context.Background(), cfg); err == nil {
		t.Fatalf("expected error when pool cannot connect")
	}
}
