package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/uniinit-labs/uniinit/internal/project"
)

// Registry maps project types to policies.
type Registry struct {
	mu       sync.RWMutex
	policies map[project.Type]Policy
}

// New returns a registry holding policies. Later entries replace earlier
// ones for the same type.
func New(policies ...Policy) *Registry {
	r := &Registry{policies: make(map[project.Type]Policy, len(policies))}
	for _, p := range policies {
		r.policies[p.Type] = p
	}
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared registry of built-in policies.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New(Builtin()...)
	})
	return defaultReg
}

// Register adds or replaces a policy.
func (r *Registry) Register(p Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[p.Type] = p
}

// Lookup returns the policy for t.
func (r *Registry) Lookup(t project.Type) (Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[t]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", ErrNotRegistered, t)
	}
	return p, nil
}

// Types returns the registered types sorted by name.
func (r *Registry) Types() []project.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]project.Type, 0, len(r.policies))
	for t := range r.policies {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
