package client

import (
	"slices"
	"sync"
)

// Hook integrates a newly created Client with an outer layer, such as a service registry.
type Hook func(c *Client)

var (
	//nolint:gochecknoglobals // Hooks are registered by integration packages at init time.
	hooksMutex sync.RWMutex
	//nolint:gochecknoglobals // Hooks are registered by integration packages at init time.
	hooks = map[string]Hook{}
)

// RegisterHook registers a hook run for every Client created afterwards.
// Registering the same name again replaces the previous hook; a nil hook removes it.
func RegisterHook(name string, hook Hook) {
	hooksMutex.Lock()
	defer hooksMutex.Unlock()

	if hook == nil {
		delete(hooks, name)

		return
	}

	hooks[name] = hook
}

// ListHooks returns the names of the registered hooks in sorted order.
func ListHooks() []string {
	hooksMutex.RLock()
	defer hooksMutex.RUnlock()

	names := make([]string, 0, len(hooks))
	for name := range hooks {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// runHooks runs the registered hooks in name order.
func runHooks(c *Client) {
	for _, name := range ListHooks() {
		hooksMutex.RLock()
		hook, ok := hooks[name]
		hooksMutex.RUnlock()

		if ok {
			hook(c)
		}
	}
}
