package cache

import (
	"context"
	"testing"
	"time"
)

type snapshot struct {
	Symbol string    `json:"symbol"`
	Prices []float64 `json:"prices"`
}

func TestMemoryCacheRoundTripDecodesStructs(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryCleanup(0))
	defer mc.Close()

	in := snapshot{Symbol: "600519", Prices: []float64{1, 2}}
	if err := mc.Set(ctx, "snapshot:600519", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	in.Prices[0] = 99

	got, err := GetTyped[snapshot](ctx, mc, "snapshot:600519")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "600519" || got.Prices[0] != 1 {
		t.Fatalf("unexpected value %+v", got)
	}

	var s string
	_ = mc.Set(ctx, "plain", "hello", 0)
	if err := mc.Get(ctx, "plain", &s); err != nil || s != "hello" {
		t.Fatalf("string round trip: %q %v", s, err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(0, 0)
	mc := NewMemoryCache(WithMemoryCleanup(0), WithMemoryClock(func() time.Time { return now }))
	defer mc.Close()

	_ = mc.Set(ctx, "k", 1, time.Second)
	if ok, _ := mc.Exists(ctx, "k"); !ok {
		t.Fatalf("expected key to exist")
	}
	now = now.Add(2 * time.Second)
	var v int
	if err := mc.Get(ctx, "k", &v); !IsMiss(err) {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(0, 0)
	mc := NewMemoryCache(WithMemoryCleanup(0), WithMemoryMaxSize(2), WithMemoryClock(func() time.Time { return now }))
	defer mc.Close()

	_ = mc.Set(ctx, "a", 1, 0)
	now = now.Add(time.Second)
	_ = mc.Set(ctx, "b", 2, 0)
	now = now.Add(time.Second)
	var v int
	_ = mc.Get(ctx, "a", &v)
	now = now.Add(time.Second)
	_ = mc.Set(ctx, "c", 3, 0)

	if ok, _ := mc.Exists(ctx, "b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if ok, _ := mc.Exists(ctx, "a", "c"); !ok || mc.Len() != 2 {
		t.Fatalf("a and c should remain")
	}
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryCleanup(0))
	defer mc.Close()

	_ = mc.Set(ctx, GenerateKey("snapshot", "bars", "A"), 1, 0)
	_ = mc.Set(ctx, GenerateKey("snapshot", "bars", "B"), 1, 0)
	_ = mc.Set(ctx, GenerateKey("analysis", "A"), 1, 0)

	if err := mc.DeleteByPattern(ctx, BuildPattern("snapshot:bars:")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mc.Len() != 1 {
		t.Fatalf("expected only analysis key left, got %d", mc.Len())
	}
	if ok, _ := mc.Exists(ctx, "analysis:A"); !ok {
		t.Fatalf("analysis key should survive")
	}
}
