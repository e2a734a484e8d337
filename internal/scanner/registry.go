package scanner

import "sync"

// Global scanner registry. Scanner packages register themselves from
// init(), wired into the binary through blank imports, so discovery
// order is fixed by import order and stays deterministic.
var (
	registered []Scanner
	mu         sync.RWMutex
)

// Register adds a scanner to the registry
func Register(s Scanner) {
	mu.Lock()
	defer mu.Unlock()
	registered = append(registered, s)
}

// All returns the registered scanners in registration order
func All() []Scanner {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Scanner, len(registered))
	copy(out, registered)
	return out
}
