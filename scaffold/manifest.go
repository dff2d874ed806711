package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// ManifestFile is the expected manifest name inside a
// pack directory.
const ManifestFile = "pack.yaml"

// Placeholder declares one substitution point used by a
// pack's templates.
type Placeholder struct {
	// Name is the uppercase placeholder identifier
	// (e.g. PACKAGE, MODULE, NAME).
	Name string `yaml:"name"`

	// Description documents the placeholder for
	// pack users.
	Description string `yaml:"description,omitempty"`

	// Default is used when the caller supplies no
	// binding. Ignored when Required is true.
	Default string `yaml:"default,omitempty"`

	// Required placeholders must be bound by the
	// caller.
	Required bool `yaml:"required,omitempty"`
}

// Template maps a pack template file to its rendered
// destination. The output path is itself a template.
type Template struct {
	// Source is the template path relative to the
	// pack directory.
	Source string `yaml:"source"`

	// Output is the destination path relative to the
	// target directory; it may contain placeholders.
	Output string `yaml:"output"`

	// Executable sets the executable bit on the
	// rendered file (e.g. generated wrapper scripts).
	Executable bool `yaml:"executable,omitempty"`
}

// Manifest describes a scaffold pack: its placeholders,
// template files, and optional post-generate commands.
type Manifest struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description,omitempty"`
	Placeholders []Placeholder `yaml:"placeholders,omitempty"`
	Templates    []Template    `yaml:"templates"`
	PostGenerate []string      `yaml:"post_generate,omitempty"`
}

// LoadManifest reads and validates pack.yaml from a
// pack directory.
func LoadManifest(packDir string) (*Manifest, error) {
	const errCtx = "loading pack manifest"

	raw, err := os.ReadFile( //nolint:gosec // path from CLI flags
		filepath.Join(packDir, ManifestFile),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var mf Manifest

	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf(
			"%s: decoding yaml: %w", errCtx, err,
		)
	}

	if err := mf.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &mf, nil
}

// validate checks structural manifest invariants.
func (mf *Manifest) validate() error {
	const errCtx = "validating manifest"

	if mf.Name == "" {
		return fmt.Errorf(
			"%s: pack name must be set", errCtx,
		)
	}

	if len(mf.Templates) == 0 {
		return fmt.Errorf(
			"%s: pack declares no templates", errCtx,
		)
	}

	seen := make(map[string]struct{})

	for _, ph := range mf.Placeholders {
		if ph.Name == "" {
			return fmt.Errorf(
				"%s: placeholder without a name",
				errCtx,
			)
		}

		if _, dup := seen[ph.Name]; dup {
			return fmt.Errorf(
				"%s: duplicate placeholder %s",
				errCtx, ph.Name,
			)
		}

		seen[ph.Name] = struct{}{}
	}

	for _, tp := range mf.Templates {
		if tp.Source == "" || tp.Output == "" {
			return fmt.Errorf(
				"%s: template entries need both "+
					"source and output",
				errCtx,
			)
		}
	}

	return nil
}

// declared reports whether name is a declared
// placeholder of the pack.
func (mf *Manifest) declared(name string) bool {
	for _, ph := range mf.Placeholders {
		if ph.Name == name {
			return true
		}
	}

	return false
}
