package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/shared/types"
)

var (
	// ErrCommandNotFound means no registered provider defines the command.
	ErrCommandNotFound = errors.New("command not found")
	// ErrDuplicateCommand means two providers claim the same command ID.
	ErrDuplicateCommand = errors.New("command already registered")
)

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Registry routes invocable commands to the providers that define them
type Registry struct {
	mu       sync.RWMutex
	services map[string]Provider
	commands map[string]Provider
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]Provider),
		commands: make(map[string]Provider),
	}
}

// Register adds a service provider and indexes its tools by ID.
// Registration is all-or-nothing.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[def.ID]; exists {
		return fmt.Errorf("service already registered: %s", def.ID)
	}
	for _, tool := range def.Tools {
		if _, exists := r.commands[tool.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, tool.ID)
		}
	}

	r.services[def.ID] = provider
	for _, tool := range def.Tools {
		r.commands[tool.ID] = provider
	}
	return nil
}

// Unregister removes a service provider and its commands
func (r *Registry) Unregister(serviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, ok := r.services[serviceID]
	if !ok {
		return
	}
	for _, tool := range provider.Definition().Tools {
		delete(r.commands, tool.ID)
	}
	delete(r.services, serviceID)
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.services[serviceID]
	return p, ok
}

// Lookup returns the provider that handles a command
func (r *Registry) Lookup(command string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.commands[command]
	return p, ok
}

// List returns registered services sorted by ID
func (r *Registry) List(category *types.Category) []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.services))
	for _, provider := range r.services {
		def := provider.Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Commands returns every invocable tool sorted by ID
func (r *Registry) Commands() []types.Tool {
	var tools []types.Tool
	for _, def := range r.List(nil) {
		tools = append(tools, def.Tools...)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].ID < tools[j].ID
	})
	return tools
}

// Execute runs a command on its provider
func (r *Registry) Execute(ctx context.Context, command string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	provider, ok := r.Lookup(command)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, command)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return provider.Execute(ctx, command, params, appCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make(map[string]int)
	for _, provider := range r.services {
		categories[string(provider.Definition().Category)]++
	}

	return map[string]interface{}{
		"total_services": len(r.services),
		"total_tools":    len(r.commands),
		"categories":     categories,
	}
}
