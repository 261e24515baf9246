package agent

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bazaar-agents/haggle/core/trade"
)

// AgentInfo describes a registered negotiator's name, side, and persona.
type AgentInfo struct {
	Name    string      `json:"name"`
	Party   trade.Party `json:"party"`
	Persona string      `json:"persona"`
}

// registration pairs a normalized config with its lazily built negotiator.
type registration struct {
	cfg        Config
	negotiator Negotiator
}

func (reg *registration) info(name string) AgentInfo {
	persona := reg.cfg.Persona
	if persona == "" {
		persona = DefaultProfile(reg.cfg.Party).Type
	}
	return AgentInfo{Name: name, Party: reg.cfg.Party, Persona: persona}
}

// Registry holds named negotiator configurations. Registration normalizes the
// config over DefaultConfig and validates it, so a daemon loading agents from
// a config file fails at startup rather than on the first request that
// selects a bad entry. Negotiators are built on first Get and cached; the
// advisory provider behind each one is therefore only constructed for agents
// that requests actually use. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registration
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registration)}
}

// Register adds a named negotiator configuration. Missing fields fall back to
// DefaultConfig values, so an entry that names only a persona registers as a
// buyer with stock advisory settings.
func (r *Registry) Register(name string, cfg Config) error {
	if name == "" {
		return ErrEmptyAgentName
	}

	normalized, err := normalize(&cfg)
	if err != nil {
		return fmt.Errorf("agent %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %s", ErrAgentExists, name)
	}

	r.entries[name] = &registration{cfg: normalized}
	return nil
}

// Replace swaps the configuration of an existing named negotiator. The cached
// instance is discarded; the next Get builds from the new config.
func (r *Registry) Replace(name string, cfg Config) error {
	if name == "" {
		return ErrEmptyAgentName
	}

	normalized, err := normalize(&cfg)
	if err != nil {
		return fmt.Errorf("agent %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}

	r.entries[name] = &registration{cfg: normalized}
	return nil
}

// Get returns the named negotiator, building and caching it on first access.
func (r *Registry) Get(name string) (Negotiator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}

	if entry.negotiator == nil {
		n, err := New(&entry.cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create agent %q: %w", name, err)
		}
		entry.negotiator = n
	}

	return entry.negotiator, nil
}

// Describe returns a named negotiator's info without instantiating it.
func (r *Registry) Describe(name string) (AgentInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[name]
	if !exists {
		return AgentInfo{}, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}

	return entry.info(name), nil
}

// List returns information about all registered negotiators, sorted by name.
func (r *Registry) List() []AgentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]AgentInfo, 0, len(r.entries))
	for name, entry := range r.entries {
		infos = append(infos, entry.info(name))
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}

// Unregister removes a named negotiator from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}

	delete(r.entries, name)
	return nil
}

// normalize layers cfg over the defaults and checks everything that does not
// require building the advisory provider. Providers that open connections or
// spawn processes stay unconstructed until first Get.
func normalize(cfg *Config) (Config, error) {
	normalized := DefaultConfig()
	normalized.Merge(cfg)

	if !normalized.Party.Valid() {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidParty, normalized.Party)
	}
	if normalized.Persona != "" {
		if _, ok := ProfileNamed(normalized.Persona); !ok {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownPersona, normalized.Persona)
		}
	}

	return normalized, nil
}
