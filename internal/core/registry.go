package core

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// The global registry is populated from init() functions when module
// packages are blank-imported by the binary, and read once at startup
// when LoadModules instantiates the configured modules.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]ModuleInfo)
)

// RegisterModule records a module so LoadModules can instantiate it by
// ID. It instantiates the argument once to read its ModuleInfo and
// panics on an empty ID, a nil constructor, or a duplicate ID, since
// any of these is a programming error in the module package itself.
func RegisterModule(instance Module) {
	info := instance.ModuleInfo()
	if info.ID == "" {
		panic("module ID must not be empty")
	}
	if info.New == nil {
		panic(fmt.Sprintf("module %s: New function must not be nil", info.ID))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	id := string(info.ID)
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("module already registered: %s", id))
	}
	registry[id] = info
}

// GetModule returns the ModuleInfo for the given ID, or false if no
// module registered under it.
func GetModule(id string) (ModuleInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	info, ok := registry[id]
	return info, ok
}

// GetModules returns all registered modules sorted by ID.
func GetModules() []ModuleInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := slices.Sorted(maps.Keys(registry))
	result := make([]ModuleInfo, 0, len(ids))
	for _, id := range ids {
		result = append(result, registry[id])
	}
	return result
}

// resetRegistry clears the registry. Only for testing.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]ModuleInfo)
}
