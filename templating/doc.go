// Package templating substitutes {{NAME}} placeholders in template
// text using a caller-supplied binding set. Tags are configurable,
// replacement values are never re-scanned, and unbound placeholders
// are either preserved as-is (the default) or rejected with
// ErrMissingBinding in strict mode.
package templating
