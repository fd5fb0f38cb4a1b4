package cache

import (
	"context"
	"testing"
	"time"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	UseClient(nil, "")
	ctx := context.Background()

	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	var dest map[string]int
	hit, err := GetJSON(ctx, "k", &dest)
	if err != nil || hit {
		t.Fatalf("get should miss: hit=%v err=%v", hit, err)
	}
	lock, err := AcquireLock(ctx, "payment:lock:order:1", time.Second)
	if err != nil || lock == nil {
		t.Fatalf("lock should degrade to empty handle: %v", err)
	}
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release empty lock failed: %v", err)
	}
	version, err := CatalogVersion(ctx)
	if err != nil || version != 0 {
		t.Fatalf("version should be zero: %d err=%v", version, err)
	}
}

func TestCatalogKey(t *testing.T) {
	if got := CatalogKey(3, "shop", 2, 6); got != "catalog:v3:shop:2:6" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := BuildKey(" x "); got != redisPrefix+":x" {
		t.Fatalf("unexpected prefixed key %s", got)
	}
}
