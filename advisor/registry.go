package advisor

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a provider from its config section.
type Factory func(cfg *Config) (Provider, error)

var (
	factories = map[string]Factory{
		KindOllama:     newOllama,
		KindOllamaExec: newExec,
		KindScripted:   newScripted,
	}
	mu sync.RWMutex
)

// Register adds a provider factory under a new kind name.
// Returns ErrKindExists if the kind is already taken.
// Thread-safe for concurrent registration.
func Register(kind string, factory Factory) error {
	if kind == "" {
		return ErrEmptyKind
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		return fmt.Errorf("%w: %s", ErrKindExists, kind)
	}

	factories[kind] = factory
	return nil
}

// Kinds returns the registered provider kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for kind := range factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// New builds a provider from config through the factory registry. An empty
// Kind resolves to the default ("ollama").
func New(cfg *Config) (Provider, error) {
	kind := cfg.Kind
	if kind == "" {
		kind = KindOllama
	}

	mu.RLock()
	factory, exists := factories[kind]
	mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	return factory(cfg)
}
