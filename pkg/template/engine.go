package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-asttpl/pkg/ast"
)

// Engine owns a template store and exposes the instantiation entry point.
// Loading happens exactly once, on the first call that needs templates or
// on an explicit Load; the store is read-mostly afterwards and instantiation
// is safe to call from concurrent goroutines.
type Engine struct {
	store        *Store
	dir          string
	fsys         fs.FS
	cachePath    string
	disableCache bool
	strict       bool
	logger       zerolog.Logger

	loadOnce sync.Once
	loadErr  error
}

// New constructs an Engine applying any provided options. The zero
// configuration reads the precompiled cache from the default location and
// falls back to scanning ./templates.
func New(options ...Option) *Engine {
	e := &Engine{
		store:     NewStore(),
		dir:       defaultTemplatesDir,
		cachePath: defaultCachePath(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Load populates the store, once. Safe to call from concurrent goroutines;
// every caller observes the outcome of the single load attempt. Hosts that
// want load failures surfaced before first use call it explicitly;
// otherwise Instantiate triggers it lazily.
func (e *Engine) Load(ctx context.Context) error {
	e.loadOnce.Do(func() {
		e.loadErr = e.load(ctx)
	})
	return e.loadErr
}

func (e *Engine) load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !e.disableCache {
		data, err := os.ReadFile(e.cachePath)
		switch {
		case err == nil:
			templates, err := DecodeCache(data)
			if err != nil {
				return fmt.Errorf("template: cache %s: %w", e.cachePath, err)
			}
			if err := e.registerAll(templates); err != nil {
				return err
			}
			e.logger.Debug().Str("path", e.cachePath).Int("templates", len(templates)).Msg("loaded precompiled template cache")
			return nil
		case errors.Is(err, fs.ErrNotExist):
			// Absence is the one non-fatal cache condition: fall back to
			// parsing sources.
			e.logger.Debug().Str("path", e.cachePath).Msg("no precompiled cache, scanning template sources")
		default:
			return fmt.Errorf("template: read cache %s: %w", e.cachePath, err)
		}
	}

	return e.scan(ctx)
}

// scan parses every eligible file in the templates directory, keying each
// tree by base name with the extension stripped. Hidden files are skipped.
// Any parse failure aborts the load; the store is never partially filled.
func (e *Engine) scan(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fsys := e.fsys
	location := e.dir
	if fsys == nil {
		fsys = os.DirFS(e.dir)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %w", ErrMissingTemplatesDir, location, err)
		}
		return fmt.Errorf("template: read templates directory %s: %w", location, err)
	}

	parsed := make(map[string]*ast.Program, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return fmt.Errorf("template: read %s: %w", path.Join(location, entry.Name()), err)
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		prog, err := ParseTemplate(path.Join(location, entry.Name()), string(data))
		if err != nil {
			return err
		}
		if _, exists := parsed[name]; exists {
			return fmt.Errorf("template: duplicate template name %q in %s", name, location)
		}
		parsed[name] = prog
	}

	if err := e.registerAll(parsed); err != nil {
		return err
	}
	e.logger.Debug().Str("dir", location).Int("templates", len(parsed)).Msg("parsed template sources")
	return nil
}

func (e *Engine) registerAll(templates map[string]*ast.Program) error {
	for name, prog := range templates {
		if err := e.store.Register(name, prog); err != nil {
			return err
		}
	}
	return nil
}

// Instantiate clones the named template, substitutes the supplied
// placeholders, and normalises the output shape.
//
// With a nil or empty placeholder map the substitution walk is skipped and
// the result is a plain clone. keepStatement only matters for templates
// whose body is a single expression statement: by default the statement
// wrapper is unwrapped to the bare expression, keepStatement retains it.
// Templates with more than one top-level statement always yield the full
// ordered sequence.
//
// Fails with ErrUnknownTemplate when name has no entry, and in strict mode
// with ErrUnusedPlaceholder when a supplied placeholder matched nothing.
func (e *Engine) Instantiate(name string, placeholders Placeholders, keepStatement bool) (Result, error) {
	if err := e.Load(context.Background()); err != nil {
		return Result{}, err
	}

	clone, err := e.store.Clone(name)
	if err != nil {
		return Result{}, err
	}

	if len(placeholders) > 0 {
		used := substitute(clone, placeholders)
		if e.strict && len(used) < len(placeholders) {
			var unused []string
			for key := range placeholders {
				if _, ok := used[key]; !ok {
					unused = append(unused, key)
				}
			}
			sort.Strings(unused)
			return Result{}, fmt.Errorf("%w: %s in template %q", ErrUnusedPlaceholder, strings.Join(unused, ", "), name)
		}
	}

	return normalize(clone, keepStatement), nil
}

// Register adds a template at runtime, after or instead of the load step.
// The tree is cloned and sanitized before storage so later caller mutations
// cannot reach the canonical copy.
func (e *Engine) Register(name string, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("template: template %q has no tree", name)
	}
	canonical := ast.CloneProgram(prog)
	ast.Sanitize(canonical)
	return e.store.Register(name, canonical)
}

// Templates triggers the one-time load if it has not happened yet and
// returns the sorted names currently registered. A failed load leaves the
// store empty; the error stays observable through Load or Instantiate.
func (e *Engine) Templates() []string {
	_ = e.Load(context.Background())
	return e.store.List()
}

// Has reports whether a template is available without instantiating it.
func (e *Engine) Has(name string) bool {
	_ = e.Load(context.Background())
	return e.store.Has(name)
}

// normalize derives the result shape from the clone's top-level statement
// list. See Result for the shape rules.
func normalize(prog *ast.Program, keepStatement bool) Result {
	body := prog.Body
	if len(body) != 1 {
		return Result{Nodes: body}
	}
	if stmt, ok := body[0].(*ast.ExpressionStmt); ok && !keepStatement {
		return Result{Node: stmt.Expr}
	}
	return Result{Node: body[0]}
}
