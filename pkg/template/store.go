package template

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-asttpl/pkg/ast"
)

// Store maps template names to their canonical trees. The canonical tree for
// a name is never handed out directly: consumers receive deep clones, so the
// store stays pristine for the life of the process.
type Store struct {
	mu        sync.RWMutex
	templates map[string]*ast.Program
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		templates: make(map[string]*ast.Program),
	}
}

// Register adds a template under name. Duplicate names return an error.
func (s *Store) Register(name string, prog *ast.Program) error {
	if name == "" {
		return fmt.Errorf("template: template name is required")
	}
	if prog == nil {
		return fmt.Errorf("template: template %q has no tree", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[name]; exists {
		return fmt.Errorf("template: template %q already registered", name)
	}
	s.templates[name] = prog
	return nil
}

// Clone returns a deep copy of the canonical tree for name, or
// ErrUnknownTemplate when the store has no entry.
func (s *Store) Clone(name string) (*ast.Program, error) {
	s.mu.RLock()
	prog, ok := s.templates[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTemplate, name)
	}
	return ast.CloneProgram(prog), nil
}

// Has reports whether a template is registered.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.templates[name]
	return ok
}

// List returns the sorted template names.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered templates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.templates)
}
