// Package asttpl is a template instantiation engine for source-to-source
// compiler pipelines: named, pre-parsed snippet trees are cloned per use and
// caller-supplied fragments are spliced over their placeholder identifiers,
// producing a tree ready to insert into a host program. The root package
// fronts pkg/template and pkg/ast so most callers need a single import.
package asttpl

import (
	"io/fs"

	"github.com/goliatone/go-asttpl/pkg/ast"
	"github.com/goliatone/go-asttpl/pkg/template"
	"github.com/rs/zerolog"
)

// Engine is the instantiation entry point; see pkg/template.
type Engine = template.Engine

// Placeholders maps placeholder names to replacement fragments.
type Placeholders = template.Placeholders

// Result is the shape-normalised output of an instantiation.
type Result = template.Result

// Option customises an Engine.
type Option = template.Option

// New constructs an Engine; with no options it reads the precompiled cache
// from the default location and falls back to scanning ./templates.
func New(options ...Option) *Engine {
	return template.New(options...)
}

// ParseTemplate parses snippet source into a canonical tree, for hosts that
// register templates dynamically instead of (or in addition to) loading them
// at startup.
func ParseTemplate(location, source string) (*ast.Program, error) {
	return template.ParseTemplate(location, source)
}

// WithTemplatesDir points the source fallback at a directory on disk.
func WithTemplatesDir(dir string) Option {
	return template.WithTemplatesDir(dir)
}

// WithFS supplies template sources from an fs.FS.
func WithFS(fsys fs.FS) Option {
	return template.WithFS(fsys)
}

// WithCacheFile overrides the precompiled cache location.
func WithCacheFile(path string) Option {
	return template.WithCacheFile(path)
}

// WithoutCache always parses sources, skipping the cache lookup.
func WithoutCache() Option {
	return template.WithoutCache()
}

// WithLogger injects a logger for load-time diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return template.WithLogger(logger)
}

// WithStrictPlaceholders fails instantiation when a supplied placeholder
// matches nothing in the template tree.
func WithStrictPlaceholders() Option {
	return template.WithStrictPlaceholders()
}
