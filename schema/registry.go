package schema

import "fmt"

// Registry is an ordered, append-only collection of attribute descriptors.
// It is populated once at schema-definition time and shared by every
// configuration object; iteration order is declaration order, which the help
// text and the binder both rely on.
type Registry[T any] struct {
	attrs  []*Attribute[T]
	byName map[string]*Attribute[T]
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{byName: make(map[string]*Attribute[T])}
}

// Register appends the descriptor. Duplicate or empty names are programming
// defects in the schema declaration, so Register panics rather than
// returning an error.
func (r *Registry[T]) Register(a *Attribute[T]) *Attribute[T] {
	if a.Name == "" {
		panic("schema: attribute with empty name")
	}
	if _, dup := r.byName[a.Name]; dup {
		panic(fmt.Sprintf("schema: duplicate attribute %q", a.Name))
	}
	r.attrs = append(r.attrs, a)
	r.byName[a.Name] = a
	return a
}

// All returns the descriptors in declaration order. The returned slice is
// shared; callers must not modify it.
func (r *Registry[T]) All() []*Attribute[T] {
	return r.attrs
}

// Lookup returns the descriptor with the given name.
func (r *Registry[T]) Lookup(name string) (*Attribute[T], bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Len returns the number of registered descriptors.
func (r *Registry[T]) Len() int { return len(r.attrs) }
