package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hsolkim/seaboard/internal/model"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("snapshot"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("snapshot")) {
		t.Errorf("Expected hit with stored value, got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("board", []byte(`{"records":[]}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("board")
	if !found {
		t.Fatal("Expected disk hit")
	}
	if string(val) != `{"records":[]}` {
		t.Errorf("Unexpected value: %q", val)
	}

	if err := c.Delete("board"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("board"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("stale", []byte("old"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get("stale"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestDiskCache_DeleteMissingIsNoop(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	if err := c.Delete("never-set"); err != nil {
		t.Errorf("Expected nil for deleting a missing key, got %v", err)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Populate through one instance, read through a fresh one so the memory
	// layer starts cold.
	writer := NewLayeredCache(time.Minute, dir, time.Minute)
	if err := writer.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reader := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := reader.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected disk hit through cold memory, got %q found=%v", val, found)
	}

	// Second read should come from the promoted memory entry.
	if val, found := reader.Get("k"); !found || string(val) != "v" {
		t.Errorf("Expected promoted hit, got %q found=%v", val, found)
	}
}

func TestLayeredCache_PromotionKeepsRemainingTTL(t *testing.T) {
	dir := t.TempDir()

	writer := NewLayeredCache(time.Minute, dir, time.Minute)
	if err := writer.Set("k", []byte("v"), 30*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Cold memory layer with a long default TTL: the promoted entry must
	// inherit the short remaining disk lifetime, not the memory default.
	reader := NewLayeredCache(time.Hour, dir, time.Minute)
	if _, found := reader.Get("k"); !found {
		t.Fatal("Expected disk hit before expiry")
	}

	time.Sleep(60 * time.Millisecond)
	if _, found := reader.Get("k"); found {
		t.Error("Expected promoted entry to expire with its disk lifetime")
	}
}

func TestSourceSetKey_TracksConfigIdentity(t *testing.T) {
	a := SourceSetKey(model.DefaultConfig())
	b := SourceSetKey(model.DefaultConfig())
	if a != b {
		t.Error("Expected identical configs to share a key")
	}
	if !strings.HasPrefix(a, "seaboard:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", a)
	}

	changed := model.DefaultConfig()
	changed.KoreanQueries = append(changed.KoreanQueries, "새 검색어")
	if SourceSetKey(changed) == a {
		t.Error("Expected key to change when a query is added")
	}

	capped := model.DefaultConfig()
	capped.Limits.ItemsPerSource = 5
	if SourceSetKey(capped) == a {
		t.Error("Expected key to change when limits change")
	}
}
