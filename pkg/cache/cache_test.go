package cache

import (
	"context"
	"strings"
	"testing"
	"time"
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

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	key := "inventory:abc123"
	value := []byte(`{"trees":42}`)

	// Miss before Set
	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set: hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, key, value, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit after Set")
	}
	if string(data) != string(value) {
		t.Errorf("Get = %q, want %q", data, value)
	}

	// Delete then miss
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("expected miss after Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Negative TTL produces an already-expired entry
	if err := c.Set(ctx, "stale", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "stale"); hit {
		t.Error("expired entry should be a miss")
	}

	// Zero TTL stores without an expiry
	if err := c.Set(ctx, "pinned", []byte("y"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "pinned"); !hit {
		t.Error("zero-TTL entry should never expire")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// InventoryKey should include options in hash
	ik1 := k.InventoryKey("hash123", InventoryKeyOpts{Region: "WOR"})
	ik2 := k.InventoryKey("hash123", InventoryKeyOpts{Region: "CA"})
	if ik1 == ik2 {
		t.Error("Different InventoryKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ik1, "inventory:") {
		t.Errorf("InventoryKey should have inventory prefix: %s", ik1)
	}

	// ReportKey
	rk1 := k.ReportKey("hash123", ReportKeyOpts{Region: "WOR", Years: []int{2012}})
	rk2 := k.ReportKey("hash123", ReportKeyOpts{Region: "WOR", Years: []int{2013}})
	if rk1 == rk2 {
		t.Error("Different ReportKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(rk1, "report:") {
		t.Errorf("ReportKey should have report prefix: %s", rk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "prod:")

	// All keys should be prefixed
	key := scoped.InventoryKey("hash123", InventoryKeyOpts{Region: "WOR"})
	if !strings.HasPrefix(key, "prod:inventory:") {
		t.Errorf("ScopedKeyer InventoryKey should be prefixed: %s", key)
	}

	rk := scoped.ReportKey("hash123", ReportKeyOpts{Region: "WOR"})
	if !strings.HasPrefix(rk, "prod:report:") {
		t.Errorf("ScopedKeyer ReportKey should be prefixed: %s", rk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.InventoryKey("h", InventoryKeyOpts{})
	if !strings.HasPrefix(key, "prefix:inventory:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
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
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
