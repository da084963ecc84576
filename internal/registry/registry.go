// Package registry provides a global registry for frontend factories.
// Frontends register themselves in init() functions, allowing the CLI
// to discover and run them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Host is what the CLI hands a frontend: a ready session, the command
// surface input should go through (the session itself or a recorder
// wrapping it), and the ambient settings.
type Host struct {
	Session  *breakout.Session
	Commands breakout.Commands
	Runtime  core.RuntimeConfig
	Config   config.BreakoutConfig
	Logger   *log.Logger
}

// Frontend owns the fixed-rate loop, device input and drawing for one
// session. The session logic itself stays in internal/breakout.
type Frontend interface {
	// ID returns a unique identifier (e.g., "tui", "gui").
	// Used for the --frontend flag and stored with recordings.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run blocks until the player quits or ctx is cancelled.
	Run(ctx context.Context, host Host) error
}

// FrontendInfo contains metadata about a registered frontend.
type FrontendInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a frontend.
type Factory func() Frontend

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a frontend factory to the registry.
// Panics if a frontend with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: frontend %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered frontends, sorted by ID.
func List() []FrontendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FrontendInfo, 0, len(factories))
	for id := range factories {
		result = append(result, FrontendInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a frontend by its ID.
func Create(id string) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown frontend %q", id)
	}
	return f(), nil
}

// Exists checks if a frontend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
