package translate

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/markconv/pkg/config"
)

// Registry holds the translators known to markconv.
type Registry struct {
	mu        sync.RWMutex
	byDialect map[Dialect]Registration
	byCommand map[string]Dialect
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byDialect: make(map[Dialect]Registration),
		byCommand: make(map[string]Dialect),
	}
}

// Register adds a translator. A registration with the same dialect is replaced.
func (r *Registry) Register(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byDialect[reg.Dialect] = reg
	if reg.Command != "" {
		r.byCommand[reg.Command] = reg.Dialect
	}
}

// Resolve finds a registration by dialect name or command name.
func (r *Registry) Resolve(key string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, ok := r.byDialect[Dialect(key)]; ok {
		return reg, true
	}
	if dialect, ok := r.byCommand[key]; ok {
		reg, ok := r.byDialect[dialect]
		return reg, ok
	}
	return Registration{}, false
}

// New builds the translator for dialect.
func (r *Registry) New(dialect Dialect, cfg *config.Config) (Translator, error) {
	reg, ok := r.Resolve(string(dialect))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return reg.Factory(cfg)
}

// Registrations returns all registrations sorted by dialect.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Registration, 0, len(r.byDialect))
	for _, reg := range r.byDialect {
		result = append(result, reg)
	}
	slices.SortFunc(result, func(a, b Registration) int {
		return cmp.Compare(a.Dialect, b.Dialect)
	})
	return result
}

// DefaultRegistry is the global registry for built-in translators.
// Translator packages register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for translator registration
var DefaultRegistry = NewRegistry()
