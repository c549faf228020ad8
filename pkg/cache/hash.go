package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds "<kind>:<sha256>" from the JSON encoding of parts. Callers
// pass already-canonical values (sorted ids, normalized slices), so equal
// resolution inputs always map to the same key.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", kind, Hash(data))
}

// Hash returns the hex SHA-256 of data. FileCache uses it to shard entries
// into directories.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
