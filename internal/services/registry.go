package services

import (
	"fmt"
	"sort"
	"sync"

	"kaya/pkg/kayatypes"
)

// Registry manages service registration and lifecycle for Kaya hosts.
type Registry struct {
	mu       sync.RWMutex
	services map[string]kayatypes.Service
}

// NewRegistry creates a new service registry with an empty service map.
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]kayatypes.Service),
	}
}

// RegisterService adds a service to the registry, returning an error if already registered.
func (r *Registry) RegisterService(service kayatypes.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := service.Name()
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s already registered", name)
	}

	r.services[name] = service
	return nil
}

// GetService retrieves a service by name, returning an error if not found.
func (r *Registry) GetService(name string) (kayatypes.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	if !exists {
		return nil, fmt.Errorf("service %s not found", name)
	}

	return service, nil
}

// InitializeAll initializes all registered services in name order.
func (r *Registry) InitializeAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.services[name].Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service %s: %w", name, err)
		}
	}

	return nil
}

// GetAllServices returns a copy of all registered services.
func (r *Registry) GetAllServices() map[string]kayatypes.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]kayatypes.Service, len(r.services))
	for name, service := range r.services {
		result[name] = service
	}

	return result
}

// Theme returns the registered theme service.
func (r *Registry) Theme() (*ThemeService, error) {
	service, err := r.GetService(ThemeServiceName)
	if err != nil {
		return nil, err
	}
	theme, ok := service.(*ThemeService)
	if !ok {
		return nil, fmt.Errorf("service %s has unexpected type %T", ThemeServiceName, service)
	}
	return theme, nil
}

// Greeting returns the registered greeting service.
func (r *Registry) Greeting() (*GreetingService, error) {
	service, err := r.GetService(GreetingServiceName)
	if err != nil {
		return nil, err
	}
	greeting, ok := service.(*GreetingService)
	if !ok {
		return nil, fmt.Errorf("service %s has unexpected type %T", GreetingServiceName, service)
	}
	return greeting, nil
}
