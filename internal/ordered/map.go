// Package ordered implements an ordered map type.
//
// Pipeline fragments are read by people before they are read by Buildkite,
// so keys must come out in the order the generator inserted them. Go maps
// (and yaml.v3's handling of them) sort keys; Map does not.
package ordered

import (
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

var _ interface {
	yaml.IsZeroer
	yaml.Marshaler
} = (*Map[string, any])(nil)

// Map is an insertion-ordered map. The zero value is ready to use.
type Map[K comparable, V any] struct {
	items []Tuple[K, V]
	index map[K]int
}

// MapSS is a convenience alias to reduce keyboard wear.
type MapSS = Map[string, string]

// MapSA is a convenience alias to reduce keyboard wear.
type MapSA = Map[string, any]

// NewMap returns a new empty map with a given initial capacity.
func NewMap[K comparable, V any](cap int) *Map[K, V] {
	return &Map[K, V]{
		items: make([]Tuple[K, V], 0, cap),
		index: make(map[K]int, cap),
	}
}

// MapFromItems creates a Map with some items. Later items with a duplicate
// key overwrite earlier ones in place.
func MapFromItems[K comparable, V any](ps ...Tuple[K, V]) *Map[K, V] {
	m := NewMap[K, V](len(ps))
	for _, p := range ps {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Len returns the number of items in the map.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// IsZero reports if m is nil or empty. It is used by yaml.v3 to check
// emptiness.
func (m *Map[K, V]) IsZero() bool {
	return m.Len() == 0
}

// Set sets the value for the given key. If the key exists, it remains in its
// existing spot, otherwise it is added to the end of the map.
func (m *Map[K, V]) Set(k K, v V) {
	// new(Map) leaves the index nil.
	if m.index == nil {
		m.index = make(map[K]int, 1)
	}

	if idx, exists := m.index[k]; exists {
		m.items[idx].Value = v
		return
	}

	m.index[k] = len(m.items)
	m.items = append(m.items, Tuple[K, V]{Key: k, Value: v})
}

// Range ranges over the map (in order). If f returns an error, it stops ranging
// and returns that error.
func (m *Map[K, V]) Range(f func(k K, v V) error) error {
	if m == nil {
		return nil
	}
	for _, p := range m.items {
		if err := f(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports if the two maps are equal (they contain the same items in the
// same order). Keys are compared directly; values are compared using go-cmp,
// with Equal itself as the comparer for nested maps, so those compare in
// order too.
func Equal[K comparable, V any](a, b *Map[K, V]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.items) != len(b.items) {
		return false
	}
	for i := range a.items {
		if a.items[i].Key != b.items[i].Key {
			return false
		}
		if !cmp.Equal(a.items[i].Value, b.items[i].Value, cmp.Comparer(Equal[string, string]), cmp.Comparer(Equal[string, any])) {
			return false
		}
	}
	return true
}

// EqualSS is a convenience alias to reduce keyboard wear.
var EqualSS = Equal[string, string]

// EqualSA is a convenience alias to reduce keyboard wear.
var EqualSA = Equal[string, any]

// MarshalYAML returns a *yaml.Node encoding this map (in order), or an error
// if any of the items could not be encoded into a *yaml.Node.
//
// Untyped nil values are encoded as an empty null scalar, so they render as a
// bare `key:` rather than `key: null`.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	n := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}
	err := m.Range(func(k K, v V) error {
		nk := new(yaml.Node)
		if err := nk.Encode(k); err != nil {
			return err
		}
		nv, err := valueNode(v)
		if err != nil {
			return err
		}
		n.Content = append(n.Content, nk, nv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// valueNode encodes a single map value.
func valueNode(v any) (*yaml.Node, error) {
	if v == nil {
		return NullNode(), nil
	}
	n := new(yaml.Node)
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}

// NullNode returns a null scalar node with no text.
func NullNode() *yaml.Node {
	return &yaml.Node{
		Kind: yaml.ScalarNode,
		Tag:  "!!null",
	}
}
