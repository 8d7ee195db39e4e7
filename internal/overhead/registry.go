package overhead

import (
	"fmt"
	"sync"

	"batterydesign/internal/topology"
)

// Factory builds a Provider for one cooling variant. Plugins register a
// Factory under a name; the run configuration selects a plugin by that
// name (spec §6: "Overhead plug-in interface... loaded by name at
// invocation").
type Factory func(cooling topology.Cooling) Provider

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a named overhead provider factory available to Lookup.
// Register panics on a duplicate name, the same way database/sql panics on
// a duplicate driver registration: it is a programming error, caught at
// package init time, never a runtime condition to recover from.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("overhead: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("overhead: Register called twice for plugin " + name)
	}
	registry[name] = factory
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("overhead: no plugin registered under %q", name)
	}
	return factory, nil
}

func init() {
	Register("default", func(cooling topology.Cooling) Provider {
		return NewDefault(cooling)
	})
}
