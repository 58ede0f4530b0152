package contract

import (
	"fmt"
	"strings"

	"pyrosense/domain/core"
)

// Registry is one model's ordered, immutable table of parameter contracts.
// Internal keys are unique within a registry; standard names need not be (a
// model may expose the same physical quantity under two keys, e.g. dead vs.
// live moisture).
type Registry struct {
	model string
	order []string
	byKey map[string]Contract
	hash  core.RegistryHash
}

// NewRegistry builds a registry, validating every contract and rejecting
// duplicate internal keys at construction time rather than at first use.
func NewRegistry(model core.ModelKey, contracts []Contract) (*Registry, error) {
	if model == "" {
		return nil, fmt.Errorf("registry model key cannot be empty")
	}
	if len(contracts) == 0 {
		return nil, fmt.Errorf("registry for %s declares no contracts", model)
	}

	r := &Registry{
		model: model.String(),
		order: make([]string, 0, len(contracts)),
		byKey: make(map[string]Contract, len(contracts)),
	}
	for _, c := range contracts {
		if err := c.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byKey[c.Key]; dup {
			return nil, core.NewContractError(c.Key, "duplicate internal key")
		}
		r.order = append(r.order, c.Key)
		r.byKey[c.Key] = c
	}
	r.hash = computeHash(model, r.order, r.byKey)
	return r, nil
}

// MustNewRegistry is NewRegistry for statically authored tables; it panics on
// invalid contracts.
func MustNewRegistry(model core.ModelKey, contracts []Contract) *Registry {
	r, err := NewRegistry(model, contracts)
	if err != nil {
		panic(err)
	}
	return r
}

// Model returns the owning model's key.
func (r *Registry) Model() core.ModelKey {
	return core.ModelKey(r.model)
}

// Len returns the number of contracts.
func (r *Registry) Len() int {
	return len(r.order)
}

// Keys returns every internal key in declaration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ContractFor looks up the contract for an internal key. Absent keys fail with
// ErrUnknownParameter naming the key.
func (r *Registry) ContractFor(key string) (Contract, error) {
	c, ok := r.byKey[key]
	if !ok {
		return Contract{}, core.NewUnknownParameterError(key)
	}
	return c, nil
}

// KeysWithRole returns, in declaration order, the internal keys of every
// contract carrying the given role.
func (r *Registry) KeysWithRole(role Role) []string {
	out := make([]string, 0, len(r.order))
	for _, key := range r.order {
		if r.byKey[key].Role == role {
			out = append(out, key)
		}
	}
	return out
}

// Hash returns the registry's deterministic fingerprint.
func (r *Registry) Hash() core.RegistryHash {
	return r.hash
}

func computeHash(model core.ModelKey, order []string, byKey map[string]Contract) core.RegistryHash {
	var data strings.Builder
	data.WriteString(model.String())
	for _, key := range order {
		c := byKey[key]
		fmt.Fprintf(&data, ";%s:%s:%s:%s:%s:%s",
			c.Key, c.StandardName, c.Unit.Symbol(), c.ValidRange, c.Role, c.Shape)
	}
	return core.NewRegistryHash([]byte(data.String()))
}
