package genid

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Resource is implemented by stores that can be published in a Registry.
type Resource interface {
	ResourceKind() string
}

// Registry is a host object registry of named resources. It is safe for concurrent use.
// The zero value is an empty registry ready to use.
type Registry struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]any)}
}

// Register adds value under name, failing if the name is taken.
func (r *Registry) Register(name string, value any) error {
	if err := checkEntry(name, value); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.values[name]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}
	r.init()
	r.values[name] = value
	return nil
}

// Set stores value under name, replacing any previous value.
func (r *Registry) Set(name string, value any) error {
	if err := checkEntry(name, value); err != nil {
		return err
	}
	r.mu.Lock()
	r.init()
	r.values[name] = value
	r.mu.Unlock()
	return nil
}

func (r *Registry) init() {
	if r.values == nil {
		r.values = make(map[string]any)
	}
}

func checkEntry(name string, value any) error {
	if name == "" {
		return ErrEmptyName
	}
	if isNil(value) {
		return ErrNilResource
	}
	return nil
}

// isNil reports whether v is nil or an interface holding a nil pointer, map, slice,
// channel or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Get returns the value registered under name.
func (r *Registry) Get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[name]
	return v, ok
}

// Delete removes name. It reports whether the name was present.
func (r *Registry) Delete(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.values[name]
	delete(r.values, name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.values))
	for k := range r.values {
		names = append(names, k)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Range calls fn for every entry until fn returns false.
func (r *Registry) Range(fn func(string, any) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k, v := range r.values {
		if !fn(k, v) {
			return
		}
	}
}

// Lookup returns the resource registered under name as a T.
func Lookup[T any](r *Registry, name string) (T, error) {
	var zero T
	v, ok := r.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T", ErrResourceType, name, v)
	}
	return t, nil
}
