// Package actions holds the reserved-key commands that are available in
// every navigation mode.
package actions

import (
	"errors"
	"fmt"

	"github.com/oakwood-commons/figpie/pkg/cell"
)

var (
	// ErrKeyInUse is returned by Add when the key already has an action.
	ErrKeyInUse = errors.New("key already bound")
	// ErrEmptyKey is returned by Add for an empty key.
	ErrEmptyKey = errors.New("empty key")
	// ErrNilAction is returned by Add when no action is given.
	ErrNilAction = errors.New("nil action")
)

// Binding pairs a reserved key with its action.
type Binding struct {
	Key    string
	Action *cell.Action
}

// Registry maps reserved keys to actions in registration order. Binding a
// key twice is a configuration bug and fails.
type Registry struct {
	bindings []Binding
	index    map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

// Add binds key to action.
func (r *Registry) Add(key string, action *cell.Action) error {
	if key == "" {
		return ErrEmptyKey
	}
	if action == nil {
		return fmt.Errorf("%w for key %q", ErrNilAction, key)
	}
	if i, ok := r.index[key]; ok {
		return fmt.Errorf("%w: %q is bound to %s", ErrKeyInUse, key, r.bindings[i].Action.Name())
	}
	r.index[key] = len(r.bindings)
	r.bindings = append(r.bindings, Binding{Key: key, Action: action})
	return nil
}

// Keys returns every bound key, active or not. This is the banned set for
// shortcut assignment, so child shortcuts stay stable while actions toggle.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.bindings))
	for i, b := range r.bindings {
		keys[i] = b.Key
	}
	return keys
}

// Active returns the bindings whose predicate currently holds.
func (r *Registry) Active() []Binding {
	var out []Binding
	for _, b := range r.bindings {
		if b.Action.Active() {
			out = append(out, b)
		}
	}
	return out
}

// ActiveKeys is Active reduced to keys.
func (r *Registry) ActiveKeys() []string {
	active := r.Active()
	keys := make([]string, len(active))
	for i, b := range active {
		keys[i] = b.Key
	}
	return keys
}

// Lookup returns the action bound to key if it is currently active.
// Inactive keys behave as unbound.
func (r *Registry) Lookup(key string) (*cell.Action, bool) {
	i, ok := r.index[key]
	if !ok || !r.bindings[i].Action.Active() {
		return nil, false
	}
	return r.bindings[i].Action, true
}

// Bound reports whether key is bound, regardless of activity.
func (r *Registry) Bound(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Len returns the number of bound keys, active or not.
func (r *Registry) Len() int { return len(r.bindings) }
