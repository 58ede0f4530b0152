package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Registry errors
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrInvalidContract  = errors.New("invalid parameter contract")

	// Quality pipeline errors
	ErrMissingInput      = errors.New("required input missing")
	ErrAmbiguousCategory = errors.New("ambiguous fuel category")
	ErrIncompatibleUnit  = errors.New("incompatible unit")
	ErrUnknownUnit       = errors.New("unknown unit")

	// Fuel resolver errors
	ErrEmptyCatalog       = errors.New("fuel catalog is empty")
	ErrNoCommonProperties = errors.New("no common properties between target and catalog")

	// Design-of-experiments errors
	ErrInvalidSampleCount = errors.New("base point count must be a positive power of two")
	ErrInvalidRange       = errors.New("invalid parameter range")

	// Analyzer errors
	ErrOutputMismatch = errors.New("model outputs do not align with design rows")

	// Persistence errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
)

// Error constructors with context

func NewUnknownParameterError(key string) error {
	return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
}

func NewMissingInputError(standardName StandardName) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, standardName)
}

func NewAmbiguousCategoryError(key string) error {
	return fmt.Errorf("%w: %q is class-indexed but no fuel category was given", ErrAmbiguousCategory, key)
}

func NewIncompatibleUnitError(from, to string) error {
	return fmt.Errorf("%w: cannot convert %s to %s", ErrIncompatibleUnit, from, to)
}

func NewContractError(key string, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidContract, key, reason)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers

func IsUnitError(err error) bool {
	return errors.Is(err, ErrIncompatibleUnit) || errors.Is(err, ErrUnknownUnit)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrAmbiguousCategory) ||
		errors.Is(err, ErrUnknownParameter)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
