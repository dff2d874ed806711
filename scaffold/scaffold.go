package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/byte4ever/springforge/migrate/exec"
	"github.com/byte4ever/springforge/templating"
)

// Generator instantiates a scaffold pack into a target
// directory.
type Generator struct {
	// PackDir is the pack root containing pack.yaml
	// and the template files.
	PackDir string

	// DestDir is the target project directory.
	DestDir string

	// Bindings supplies placeholder values; manifest
	// defaults fill the gaps.
	Bindings map[string]string

	// Force overwrites hand-edited generated files.
	Force bool

	// SkipHooks disables post-generate commands.
	SkipHooks bool

	// DryRun plans outputs without touching the
	// filesystem or running hooks.
	DryRun bool
}

// Result lists the outcome of a generation run. Paths
// are relative to the target directory.
type Result struct {
	// Written holds rendered outputs (or planned
	// outputs in dry-run mode).
	Written []string

	// Skipped holds outputs left alone because the
	// existing file was edited after generation.
	Skipped []string
}

// Run loads the pack manifest, validates bindings
// against the declared placeholders, renders every
// template, and runs post-generate hooks. Existing
// outputs whose content no longer matches their
// recorded digest were hand-edited and are skipped
// unless Force is set.
func (g *Generator) Run(
	ctx context.Context,
) (*Result, error) {
	const errCtx = "generating scaffold"

	mf, err := LoadManifest(g.PackDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	set, err := g.effectiveBindings(mf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	en := templating.Engine{
		Bindings: set,
		Strict:   true,
	}

	if err := g.checkDeclarations(mf, &en); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	res := &Result{}

	for _, tp := range mf.Templates {
		if err := g.renderTemplate(
			&en, tp, res,
		); err != nil {
			return nil, fmt.Errorf(
				"%s: template %s: %w",
				errCtx, tp.Source, err,
			)
		}
	}

	if g.SkipHooks || g.DryRun {
		return res, nil
	}

	for _, hook := range mf.PostGenerate {
		if _, err := exec.Ex(
			ctx, g.DestDir, "sh", "-c", hook,
		); err != nil {
			return nil, fmt.Errorf(
				"%s: post-generate hook: %w",
				errCtx, err,
			)
		}
	}

	return res, nil
}

// effectiveBindings merges manifest defaults under the
// caller's bindings and rejects unbound required
// placeholders.
func (g *Generator) effectiveBindings(
	mf *Manifest,
) (map[string]string, error) {
	const errCtx = "checking bindings"

	set := make(map[string]string, len(g.Bindings))
	for key, val := range g.Bindings {
		set[key] = val
	}

	var missing []string

	for _, ph := range mf.Placeholders {
		if _, ok := set[ph.Name]; ok {
			continue
		}

		if ph.Required {
			missing = append(missing, ph.Name)

			continue
		}

		set[ph.Name] = ph.Default
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return nil, fmt.Errorf(
			"%s: required placeholders without "+
				"bindings: %s",
			errCtx, strings.Join(missing, ", "),
		)
	}

	return set, nil
}

// checkDeclarations verifies that every placeholder
// referenced by the pack's templates and output paths
// is declared in the manifest.
func (g *Generator) checkDeclarations(
	mf *Manifest,
	en *templating.Engine,
) error {
	const errCtx = "checking placeholder declarations"

	for _, tp := range mf.Templates {
		raw, err := os.ReadFile( //nolint:gosec // paths from pack manifest
			filepath.Join(g.PackDir, tp.Source),
		)
		if err != nil {
			return fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		used, err := templating.Placeholders(
			string(raw)+tp.Output,
			en.StartTag, en.EndTag,
		)
		if err != nil {
			return fmt.Errorf(
				"%s: %s: %w", errCtx, tp.Source, err,
			)
		}

		for _, name := range used {
			if !mf.declared(name) {
				return fmt.Errorf(
					"%s: %s uses undeclared "+
						"placeholder %s",
					errCtx, tp.Source, name,
				)
			}
		}
	}

	return nil
}

// renderTemplate renders one template entry into the
// target directory, honoring digest sidecars.
func (g *Generator) renderTemplate(
	en *templating.Engine,
	tp Template,
	res *Result,
) error {
	const errCtx = "rendering"

	outRel, err := en.Render(tp.Output)
	if err != nil {
		return fmt.Errorf(
			"%s: output path: %w", errCtx, err,
		)
	}

	outPath := filepath.Join(g.DestDir, outRel)

	if g.DryRun {
		res.Written = append(res.Written, outRel)

		return nil
	}

	intact, err := verifyDigest(outPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if !intact && !g.Force {
		slog.Info(
			"skipping edited file",
			"path", outRel,
		)

		res.Skipped = append(res.Skipped, outRel)

		return nil
	}

	if err := os.MkdirAll(
		filepath.Dir(outPath), 0o755,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.RenderFile(
		filepath.Join(g.PackDir, tp.Source),
		outPath,
		tp.Executable,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := saveDigest(outPath); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	res.Written = append(res.Written, outRel)

	return nil
}
