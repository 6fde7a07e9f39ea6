package template

import "errors"

var (
	// ErrUnknownTemplate is returned when an instantiation names a template
	// the store has no entry for. Non-retryable: register the template or
	// fix the name.
	ErrUnknownTemplate = errors.New("template: unknown template")

	// ErrMissingTemplatesDir is returned at load time when no precompiled
	// cache exists and the fallback source directory cannot be read.
	ErrMissingTemplatesDir = errors.New("template: templates directory missing")

	// ErrUnusedPlaceholder is returned in strict mode when a supplied
	// placeholder matched nothing in the template tree. The default
	// permissive mode ignores unmatched placeholders in both directions.
	ErrUnusedPlaceholder = errors.New("template: unused placeholder")
)
