// Package ids provides the content-addressed and deterministic identifiers
// the pipeline needs for round-trip and idempotence guarantees (spec §8):
// a plain checksum for change detection, and a deterministic UUID for
// stable sink node/edge IDs across repeated runs over the same input.
package ids

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// codegrafNamespace is a fixed namespace UUID used to derive deterministic
// IDs via UUID v5 (SHA-1 of namespace + name). Generated once, frozen here:
// changing it would reshuffle every previously emitted ID.
var codegrafNamespace = uuid.MustParse("8f14e45f-ceea-467e-9b0a-3f2a9e7e3b6a")

// Checksum returns the SHA-256 hex digest of content, used for ParsedFile's
// Checksum field and round-trip comparisons.
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Deterministic derives a stable UUID from the given parts. The same parts
// always yield the same ID, across processes and runs, which is what lets
// the graph sink upsert idempotently (spec §8's idempotence invariant):
// reindexing unchanged input produces the same node/edge IDs rather than
// fresh ones.
func Deterministic(parts ...string) string {
	key := strings.Join(parts, ":")
	return uuid.NewSHA1(codegrafNamespace, []byte(key)).String()
}

// Random generates a fresh, non-deterministic UUID, for entities that have
// no natural stable key (e.g. an in-memory run identifier).
func Random() string {
	return uuid.New().String()
}
