package drivers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/larsks/faultblink/internal/led"
)

// Factory creates an LED device from configuration
type Factory interface {
	CreateDriver(config map[string]any) (led.Device, error)
	ValidateConfig(config map[string]any) error
}

// Registry manages driver factories
type Registry struct {
	drivers map[string]Factory
	mu      sync.RWMutex
}

// NewRegistry creates a new driver registry
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Factory),
	}
}

// Register adds a driver factory to the registry
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDriverExists, name)
	}

	r.drivers[name] = factory
	return nil
}

func (r *Registry) factory(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.drivers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, name)
	}
	return factory, nil
}

// Create creates an LED using the specified driver
func (r *Registry) Create(driverName string, config map[string]any) (led.Device, error) {
	factory, err := r.factory(driverName)
	if err != nil {
		return nil, err
	}
	return factory.CreateDriver(config)
}

// ValidateConfig validates configuration for the specified driver
func (r *Registry) ValidateConfig(driverName string, config map[string]any) error {
	factory, err := r.factory(driverName)
	if err != nil {
		return err
	}
	return factory.ValidateConfig(config)
}

// ListDrivers returns the sorted names of all registered drivers
func (r *Registry) ListDrivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Register adds a driver factory to the default registry
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// Create creates an LED using the default registry
func Create(driverName string, config map[string]any) (led.Device, error) {
	return defaultRegistry.Create(driverName, config)
}

// ValidateConfig validates configuration using the default registry
func ValidateConfig(driverName string, config map[string]any) error {
	return defaultRegistry.ValidateConfig(driverName, config)
}

// ListDrivers returns the names of all registered drivers in the default registry
func ListDrivers() []string {
	return defaultRegistry.ListDrivers()
}
