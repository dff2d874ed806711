// Package fixes applies the mechanical subset of migration rewrites
// found by the scanner: relocated imports and renamed test annotations
// in Java sources, and Jackson configuration keys moved under
// spring.jackson.json in properties and YAML files. Every rewrite is
// reported so the migration runner can record it in the commit
// message.
package fixes
