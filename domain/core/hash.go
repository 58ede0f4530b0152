package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
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

// Domain-specific hash types
type (
	// RegistryHash fingerprints one model's parameter registry.
	RegistryHash Hash

	// DesignHash fingerprints one generated sample matrix.
	DesignHash Hash
)

func NewRegistryHash(data []byte) RegistryHash { return RegistryHash(NewHash(data)) }
func NewDesignHash(data []byte) DesignHash     { return DesignHash(NewHash(data)) }

func (h RegistryHash) String() string { return Hash(h).String() }
func (h DesignHash) String() string   { return Hash(h).String() }

// ComputeFieldsHash builds a deterministic hash over named fields.
// Keys are sorted so the result is independent of map iteration order.
func ComputeFieldsHash(fields map[string]interface{}) Hash {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString(fmt.Sprintf("%v", fields[key]))
	}

	return NewHash([]byte(data.String()))
}
