package rate_test

import (
	"context"
	"testing"
	"time"

	"github.com/ergiva/ergiva-server/internal/rate"
)

func TestMemoryLimiter_BlocksAfterMax(t *testing.T) {
	l := rate.NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i+1, err)
		}
		if !res.Allowed {
			t.Fatalf("hit #%d bloqueado antes del límite", i+1)
		}
	}

	res, err := l.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Fatal("cuarto hit debió bloquearse")
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("RetryAfter = %v, quiero > 0", res.RetryAfter)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := rate.NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "a"); !res.Allowed {
		t.Fatal("primer hit de a bloqueado")
	}
	if res, _ := l.Allow(ctx, "a"); res.Allowed {
		t.Fatal("segundo hit de a debió bloquearse")
	}
	if res, _ := l.Allow(ctx, "b"); !res.Allowed {
		t.Fatal("el límite de a no debe afectar a b")
	}
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	l := rate.NewMemoryLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "x"); !res.Allowed {
		t.Fatal("primer hit bloqueado")
	}
	if res, _ := l.Allow(ctx, "x"); res.Allowed {
		t.Fatal("segundo hit debió bloquearse")
	}

	time.Sleep(30 * time.Millisecond)
	if res, _ := l.Allow(ctx, "x"); !res.Allowed {
		t.Fatal("ventana nueva debió permitir")
	}
}
