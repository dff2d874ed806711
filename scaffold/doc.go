// Package scaffold instantiates template packs into project
// directories. A pack is a directory with a pack.yaml manifest
// declaring placeholders (with defaults and required flags), template
// files, templated output paths, and optional post-generate commands.
// Generated files carry sha256 sidecars so later runs refuse to
// overwrite hand-edited output unless forced.
package scaffold
