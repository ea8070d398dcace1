// Package cache provides caching for parsed inventories and computed reports.
//
// Parsing a full FPS export and assigning equations to every tree record is
// cheap per tree but adds up for large properties, so both the parsed
// inventory and the computed report rows can be memoized. Keys are derived
// from a SHA-256 hash of the input file contents plus the options that affect
// the result, so edits to the source CSVs or a region change invalidate the
// entry automatically.
//
// Backends:
//   - FileCache: directory of JSON entries, for CLI usage
//   - RedisCache: shared cache for the HTTP server
//   - NullCache: caching disabled
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLInventory applies to parsed inventory snapshots.
	TTLInventory = 24 * time.Hour

	// TTLReport applies to computed report rows.
	TTLReport = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// InventoryKeyOpts are the options that affect a parsed inventory.
type InventoryKeyOpts struct {
	Region    string // assignment region (WOR, WWA, EOR, EWA, CA)
	Crosswalk string // hash of the crosswalk file, empty when none
}

// ReportKeyOpts are the options that affect computed report rows.
type ReportKeyOpts struct {
	Region     string
	Crosswalk  string
	Properties []string // property filter, empty means all
	Years      []int    // report year filter, empty means all
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// InventoryKey generates a key for a parsed inventory.
	// contentHash is the hash of the concatenated input files.
	InventoryKey(contentHash string, opts InventoryKeyOpts) string

	// ReportKey generates a key for computed report rows.
	ReportKey(inventoryHash string, opts ReportKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// InventoryKey generates a key for a parsed inventory.
func (k *DefaultKeyer) InventoryKey(contentHash string, opts InventoryKeyOpts) string {
	return hashKey("inventory", contentHash, opts)
}

// ReportKey generates a key for computed report rows.
func (k *DefaultKeyer) ReportKey(inventoryHash string, opts ReportKeyOpts) string {
	return hashKey("report", inventoryHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
