package agentstore

import "reflect"

// ComponentOf gives typed access to one registered component array. Its
// accessors panic if the component is not registered on the store. The orchestrator itself never imports concrete component types
// (spec.md §9: "No type is needed at the orchestrator level"); only
// application code calling RegisterComponent/ComponentOf does.
type ComponentOf[T any] struct {
	store *Store
	typ   reflect.Type
}

// RegisterComponent adds a new homogeneous array of T to the store, sized
// to the store's current agent count and filled with zero. Registering
// the same type twice is a no-op that returns the existing accessor.
func RegisterComponent[T any](s *Store, zero T) ComponentOf[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if existing, ok := s.components[typ]; ok {
		_ = existing
		return ComponentOf[T]{store: s, typ: typ}
	}
	values := make([]T, s.n)
	for i := range values {
		values[i] = zero
	}
	s.components[typ] = &typedComponent[T]{values: values, zero: zero}
	return ComponentOf[T]{store: s, typ: typ}
}

func (c ComponentOf[T]) backing() *typedComponent[T] {
	tc, ok := c.store.components[c.typ]
	if !ok {
		panic("agentstore: component not registered on this store")
	}
	typed, ok := tc.(*typedComponent[T])
	if !ok {
		panic("agentstore: component type mismatch")
	}
	return typed
}

// Get returns the component value for agent a.
func (c ComponentOf[T]) Get(a uint32) T { return c.backing().values[a] }

// Set overwrites the component value for agent a. Only the sequential
// apply phase or pre-tick setup should call this; behaviors read
// components through the read-only Context instead (spec.md §4.7).
func (c ComponentOf[T]) Set(a uint32, v T) { c.backing().values[a] = v }

// Slice returns the full component array as a read-only view, for
// behavior contexts and observers.
func (c ComponentOf[T]) Slice() []T { return c.backing().values }

// MutableSlice returns the full component array for bulk, caller-owned
// mutation (e.g. batch initialization before the tick loop starts).
func (c ComponentOf[T]) MutableSlice() []T { return c.backing().values }
