// Package registry manages backend registration and lookup. Backends register
// themselves from init() so importing a backend package is enough to make it
// selectable by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/errors"
	"github.com/framedoc/framedoc/pkg/logger"
)

// Factory creates a backend instance
type Factory func() backend.Backend

// Registry maps backend names to factories
type Registry struct {
	backends map[string]Factory
	mu       sync.RWMutex
	logger   *zap.Logger
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new backend registry
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Factory),
		logger:   logger.Get().With(zap.String("component", "backend_registry")),
	}
}

// Register registers a backend factory
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("backend %s already registered", name))
	}

	r.backends[name] = factory
	r.logger.Info("backend registered", zap.String("name", name))
	return nil
}

// Create creates a backend instance by name
func (r *Registry) Create(name string) (backend.Backend, error) {
	r.mu.RLock()
	factory, exists := r.backends[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.New(errors.ErrorTypeConfig, fmt.Sprintf("backend %s not found", name)).
			WithDetail("available_backends", r.List())
	}

	return factory(), nil
}

// List returns the registered backend names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register registers a backend factory in the global registry
func Register(name string, factory Factory) error {
	return globalRegistry.Register(name, factory)
}

// Create creates a backend instance from the global registry
func Create(name string) (backend.Backend, error) {
	return globalRegistry.Create(name)
}

// List returns the backends registered in the global registry
func List() []string {
	return globalRegistry.List()
}
