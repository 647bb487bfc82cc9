// Package cache stores board snapshots between refresh cycles. Collection
// is expensive (one request per query and source), so the CLI wraps the
// collector in a TTL cache keyed by the identity of the configured source
// set; editing the config naturally invalidates the entry.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/hsolkim/seaboard/internal/model"
)

// Cache is a byte-value store with per-entry TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SourceSetKey derives the snapshot cache key from everything that shapes
// a collection cycle: the ordered queries, source URLs and volume caps.
func SourceSetKey(cfg *model.Config) string {
	var b strings.Builder
	for _, q := range cfg.KoreanQueries {
		fmt.Fprintf(&b, "q:%s\n", q)
	}
	for _, src := range cfg.USSources {
		fmt.Fprintf(&b, "s:%s\n", src.URL)
	}
	fmt.Fprintf(&b, "limits:%d/%d", cfg.Limits.EntriesPerQuery, cfg.Limits.ItemsPerSource)

	sum := sha256.Sum256([]byte(b.String()))
	return "seaboard:v1:" + hex.EncodeToString(sum[:])
}
