package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Short returns the first 12 hex characters, enough for display.
func (h Hash) Short() string {
	s := string(h)
	if len(s) > 12 {
		return s[:12]
	}
	return s
}

// Domain-specific hash types
type (
	DatasetHash Hash
	ModelHash   Hash
	FilterHash  Hash
)

// Constructors
func NewDatasetHash(data []byte) DatasetHash { return DatasetHash(NewHash(data)) }
func NewModelHash(data []byte) ModelHash     { return ModelHash(NewHash(data)) }

// String conversions
func (h DatasetHash) String() string { return Hash(h).String() }
func (h ModelHash) String() string   { return Hash(h).String() }
func (h FilterHash) String() string  { return Hash(h).String() }

func (h DatasetHash) Short() string { return Hash(h).Short() }
func (h ModelHash) Short() string   { return Hash(h).Short() }

// ComputeFilterHash fingerprints a department selection. Order-insensitive,
// so the same selection always maps to the same snapshot identity.
func ComputeFilterHash(departments []string) FilterHash {
	sorted := make([]string, len(departments))
	copy(sorted, departments)
	sort.Strings(sorted)

	var data strings.Builder
	for _, d := range sorted {
		data.WriteString(d)
		data.WriteByte(0x1f)
	}
	return FilterHash(NewHash([]byte(data.String())))
}
