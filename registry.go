package delegate

import (
	"fmt"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Definition describes a named agent that can be spawned during delegation.
// The engine only needs resolvability; executors read the remaining fields
// to configure the underlying model call.
type Definition struct {
	// Name is the identifier TaskSpecs refer to.
	Name string

	// Model is the executor-specific model identifier. Empty inherits the
	// executor's default.
	Model string

	// Instructions is the system prompt for this agent.
	Instructions string

	// Tools is the set of tool names available to this agent. Nil means
	// the executor's defaults.
	Tools []string

	// SkillPatterns are doublestar glob patterns resolving to markdown
	// skill files injected ahead of Instructions.
	SkillPatterns []string

	// MaxOutputTokens limits the agent's response size. 0 means the
	// executor's default.
	MaxOutputTokens int
}

// Registry resolves agent names to definitions. Resolution failure for a
// run's root agent surfaces as a StopError result; for a child node it is
// captured as one error entry and siblings continue.
type Registry interface {
	Resolve(name string) (*Definition, error)
}

// StaticRegistry is a map-backed Registry with optional glob allow patterns.
// A name matching an allow pattern but carrying no registered definition
// resolves to a bare Definition inheriting all executor defaults.
// It is safe for concurrent use.
type StaticRegistry struct {
	mu       sync.RWMutex
	defs     map[string]*Definition
	patterns []string
}

var _ Registry = (*StaticRegistry)(nil)

// NewStaticRegistry creates a registry holding the given definitions.
func NewStaticRegistry(defs ...*Definition) *StaticRegistry {
	r := &StaticRegistry{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		r.defs[d.Name] = d
	}
	return r
}

// Register adds or replaces a definition.
func (r *StaticRegistry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Name] = def
}

// Allow adds doublestar patterns for names that resolve without a
// registered definition, e.g. "research/**" or "worker-*".
func (r *StaticRegistry) Allow(patterns ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patterns = append(r.patterns, patterns...)
}

// Resolve returns the definition for name, a bare definition when an allow
// pattern matches, or an error wrapping ErrAgentNotFound.
func (r *StaticRegistry) Resolve(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if def, ok := r.defs[name]; ok {
		return def, nil
	}
	for _, pattern := range r.patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return &Definition{Name: name}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
}
