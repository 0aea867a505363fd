package cache_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ergiva/ergiva-server/internal/cache"
)

func TestMemory_SetGetDelete(t *testing.T) {
	c := cache.NewMemory("test")
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); err != cache.ErrNotFound {
		t.Fatalf("Get sobre key inexistente: err = %v, quiero ErrNotFound", err)
	}

	if err := c.Set(ctx, "k", []byte("valor"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte("valor")) {
		t.Fatalf("Get = %q", got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != cache.ErrNotFound {
		t.Fatalf("Get tras Delete: err = %v, quiero ErrNotFound", err)
	}
}

func TestMemory_TTLExpires(t *testing.T) {
	c := cache.NewMemory("")
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 15*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Fatalf("Get antes de expirar: %v", err)
	}

	time.Sleep(25 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); err != cache.ErrNotFound {
		t.Fatalf("Get tras TTL: err = %v, quiero ErrNotFound", err)
	}
}

func TestNew_DispatchesByKind(t *testing.T) {
	c, err := cache.New(cache.Config{Kind: "memory", Prefix: "p"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
