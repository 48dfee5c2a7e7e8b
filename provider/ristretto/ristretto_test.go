package ristretto

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64, SyncWrites: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for zero config")
	}
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	want := []byte("entry")
	ok, err := p.Set(ctx, "code:gift:CR", want, int64(len(want)), time.Minute)
	if err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "code:gift:CR")
	if err != nil || !ok || !bytes.Equal(got, want) {
		t.Fatalf("Get: ok=%v err=%v got=%q", ok, err, got)
	}

	if err := p.Del(ctx, "code:gift:CR"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "code:gift:CR"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestUnexpectedShapeSelfHeals(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	p.c.Set("foreign", 42, 1)
	p.c.Wait()
	if _, ok, err := p.Get(ctx, "foreign"); ok || err != nil {
		t.Fatalf("expected miss for non-[]byte value, ok=%v err=%v", ok, err)
	}
	if _, ok := p.c.Get("foreign"); ok {
		t.Fatalf("foreign value should have been deleted")
	}
}
