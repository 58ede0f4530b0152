package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific identifier types
type (
	// RunID identifies one sensitivity study run.
	RunID ID

	// ModelKey identifies one registered fire-behavior model.
	ModelKey string

	// StandardName is a shared-vocabulary identifier for a physical quantity
	// (e.g. "wind_speed"), independent of any model's internal variable naming.
	StandardName string
)

func (id RunID) String() string       { return ID(id).String() }
func (k ModelKey) String() string     { return string(k) }
func (n StandardName) String() string { return string(n) }

// ParseRunID parses a string into a RunID
func ParseRunID(s string) (RunID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("invalid run ID %q: %w", s, err)
	}
	return RunID(s), nil
}
