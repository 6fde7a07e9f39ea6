package template

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-asttpl/pkg/ast"
)

// DecodeCache parses a precompiled cache payload: a JSON object mapping
// template names to serialised trees. Malformed payloads are fatal; a cache
// that exists must be trusted or rebuilt, never silently skipped.
func DecodeCache(data []byte) (map[string]*ast.Program, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("template: malformed cache: %w", err)
	}

	templates := make(map[string]*ast.Program, len(raw))
	for name, payload := range raw {
		prog, err := ast.UnmarshalProgram(payload)
		if err != nil {
			return nil, fmt.Errorf("template: cache entry %q: %w", name, err)
		}
		templates[name] = prog
	}
	return templates, nil
}

// EncodeCache serialises a name → tree mapping into the precompiled cache
// format consumed by DecodeCache. Hosts use it to package template sets
// ahead of time and skip the parse step at startup.
func EncodeCache(templates map[string]*ast.Program) ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(templates))
	for name, prog := range templates {
		payload, err := ast.MarshalProgram(prog)
		if err != nil {
			return nil, fmt.Errorf("template: encode %q: %w", name, err)
		}
		raw[name] = payload
	}
	return json.Marshal(raw)
}
