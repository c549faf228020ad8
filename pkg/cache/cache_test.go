package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/modorder/pkg/mods"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "v1" {
		t.Errorf("Get(k) = %q, want %q", data, "v1")
	}

	// Overwrite
	if err := c.Set(ctx, "k", []byte("v2"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, _, _ = c.Get(ctx, "k")
	if string(data) != "v2" {
		t.Errorf("Get(k) after overwrite = %q, want %q", data, "v2")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)

	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("Clear should keep the root directory: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func testSet() mods.Set {
	return mods.NewSet(
		&mods.Meta{ID: "core"},
		&mods.Meta{ID: "ui", Name: "UI", Dependencies: []mods.Dependency{
			{Target: "core", Ordering: mods.OrderAfter},
		}},
	)
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := k.ResolutionKey(testSet(), []mods.ID{"core", "ui"}, []mods.ID{"x", "y"})

	if !strings.HasPrefix(base, "resolve:") {
		t.Errorf("ResolutionKey() = %q, want resolve: prefix", base)
	}
	if again := k.ResolutionKey(testSet(), []mods.ID{"core", "ui"}, []mods.ID{"x", "y"}); again != base {
		t.Error("ResolutionKey should be deterministic")
	}

	// Disabled order is irrelevant
	if got := k.ResolutionKey(testSet(), []mods.ID{"core", "ui"}, []mods.ID{"y", "x", "x"}); got != base {
		t.Error("disabled list order should not change the key")
	}

	// Previous order matters
	if got := k.ResolutionKey(testSet(), []mods.ID{"ui", "core"}, []mods.ID{"x", "y"}); got == base {
		t.Error("different previous order should change the key")
	}

	// Descriptive metadata does not
	set := testSet()
	set["ui"].Name = "Renamed"
	set["ui"].Version = "2.0"
	if got := k.ResolutionKey(set, []mods.ID{"core", "ui"}, []mods.ID{"x", "y"}); got != base {
		t.Error("descriptive metadata should not change the key")
	}

	// Declarations do
	set = testSet()
	set["ui"].Dependencies[0].Optional = true
	if got := k.ResolutionKey(set, []mods.ID{"core", "ui"}, []mods.ID{"x", "y"}); got == base {
		t.Error("dependency change should change the key")
	}

	// nil and empty slices are equivalent
	if k.ResolutionKey(testSet(), nil, nil) != k.ResolutionKey(testSet(), []mods.ID{}, []mods.ID{}) {
		t.Error("nil and empty inputs should produce the same key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	want := "user:123:" + inner.ResolutionKey(testSet(), nil, nil)
	if got := scoped.ResolutionKey(testSet(), nil, nil); got != want {
		t.Errorf("ResolutionKey() = %q, want %q", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ResolutionKey(testSet(), nil, nil)
	if !strings.HasPrefix(key, "prefix:resolve:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

var (
	errNetwork  = errors.New("network error")
	errNotFound = errors.New("not found")
)

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errNetwork) {
		t.Error("wrapped error should unwrap to the original")
	}

	if IsRetryable(errNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	fast := Backoff{Attempts: 3, Delay: time.Millisecond}

	calls := 0
	err := RetryWithBackoff(ctx, fast, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, fast, func() error {
		calls++
		return errNotFound
	})
	if err != errNotFound {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, fast, func() error {
		calls++
		if calls < 2 {
			return Retryable(errNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	// Exhausted attempts return the unwrapped error
	calls = 0
	err = RetryWithBackoff(ctx, fast, func() error {
		calls++
		return Retryable(errNetwork)
	})
	if err != errNetwork {
		t.Errorf("RetryWithBackoff() = %v, want %v", err, errNetwork)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, Backoff{Attempts: 3, Delay: time.Second}, func() error {
		return Retryable(errNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
