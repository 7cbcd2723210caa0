package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
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
	if err := c.Set(ctx, "key", []byte("value")); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}
}

func TestFileCacheRoundtrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "stamps"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	key := Key("attr", "/graph", "head")
	if err := c.Set(ctx, key, []byte("deadbeef")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "deadbeef" {
		t.Errorf("Get = %q, want %q", data, "deadbeef")
	}

	// Unknown key misses
	if _, hit, _ := c.Get(ctx, Key("attr", "/graph", "longitude")); hit {
		t.Error("unknown key should miss")
	}

	// Set overwrites: a reconverted attribute replaces its stamp
	if err := c.Set(ctx, key, []byte("cafebabe")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, _, _ := c.Get(ctx, key); string(data) != "cafebabe" {
		t.Errorf("Get after overwrite = %q, want %q", data, "cafebabe")
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

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "head")
	if err := os.WriteFile(path, []byte("1\n2\n3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := Hash([]byte("1\n2\n3\n")); got != want {
		t.Errorf("HashFile = %s, want %s", got, want)
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("HashFile on missing file should error")
	}
}

func TestKeyIsStable(t *testing.T) {
	k1 := Key("attr", "/graph", "head")
	k2 := Key("attr", "/graph", "head")
	if k1 != k2 {
		t.Error("Key should be deterministic")
	}
	if k1 == Key("attr", "/graph", "latitude") {
		t.Error("different parts should produce different keys")
	}
	if k1 == Key("order", "/graph", "head") {
		t.Error("different prefixes should produce different keys")
	}
}
