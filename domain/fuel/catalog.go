// Package fuel models fuel classification catalogs: ordered sets of fuel
// classes, each holding the same physical properties keyed by standard name.
package fuel

import (
	"fmt"
	"sort"

	"pyrosense/domain/core"
	"pyrosense/domain/units"
)

// Class is one category within a fuel model's fixed classification, e.g. one
// of 13 vegetation categories. Index is 1-based by convention.
type Class struct {
	Index      int
	Name       string
	Properties map[core.StandardName]units.Quantity
}

// Property returns the class's quantity for a standard name.
func (c Class) Property(name core.StandardName) (units.Quantity, bool) {
	q, ok := c.Properties[name]
	return q, ok
}

// Catalog is an ordered sequence of fuel classes over a fixed category count.
// Every class in a catalog exposes the same property set; the constructor
// enforces it.
type Catalog struct {
	classes []Class
	keys    []core.StandardName
}

// NewCatalog builds a catalog from classes in order, assigning 1-based
// indexes. It rejects catalogs whose classes disagree on property sets.
func NewCatalog(classes []Class) (*Catalog, error) {
	if len(classes) == 0 {
		return nil, core.ErrEmptyCatalog
	}

	ref := classes[0].Properties
	keys := make([]core.StandardName, 0, len(ref))
	for k := range ref {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]Class, len(classes))
	for i, c := range classes {
		if len(c.Properties) != len(ref) {
			return nil, fmt.Errorf("class %d exposes %d properties, class 1 exposes %d",
				i+1, len(c.Properties), len(ref))
		}
		for k := range ref {
			if _, ok := c.Properties[k]; !ok {
				return nil, fmt.Errorf("class %d is missing property %s", i+1, k)
			}
		}
		out[i] = Class{Index: i + 1, Name: c.Name, Properties: c.Properties}
	}

	return &Catalog{classes: out, keys: keys}, nil
}

// Len returns the number of classes.
func (cat *Catalog) Len() int {
	return len(cat.classes)
}

// Classes returns the classes in catalog order.
func (cat *Catalog) Classes() []Class {
	out := make([]Class, len(cat.classes))
	copy(out, cat.classes)
	return out
}

// Class returns the class at the given 1-based index.
func (cat *Catalog) Class(index int) (Class, error) {
	if index < 1 || index > len(cat.classes) {
		return Class{}, fmt.Errorf("class index %d out of range [1, %d]", index, len(cat.classes))
	}
	return cat.classes[index-1], nil
}

// PropertyKeys returns the standard names every class exposes, sorted for
// deterministic iteration.
func (cat *Catalog) PropertyKeys() []core.StandardName {
	out := make([]core.StandardName, len(cat.keys))
	copy(out, cat.keys)
	return out
}

// HasProperty reports whether the catalog's classes expose a standard name.
func (cat *Catalog) HasProperty(name core.StandardName) bool {
	for _, k := range cat.keys {
		if k == name {
			return true
		}
	}
	return false
}
