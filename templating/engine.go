package templating

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/valyala/fasttemplate"
)

// ErrMissingBinding is returned in strict mode when a
// template references a placeholder with no binding.
var ErrMissingBinding = errors.New("missing binding")

// Engine substitutes placeholder tags in template text
// using a binding set.
type Engine struct {
	// StartTag and EndTag delimit placeholders.
	// Empty values default to "{{" and "}}".
	StartTag string
	EndTag   string

	// Bindings maps placeholder names to their
	// replacement text.
	Bindings map[string]string

	// Strict makes rendering fail with
	// ErrMissingBinding on the first placeholder
	// that has no binding. When false, unbound
	// placeholders are emitted unchanged.
	Strict bool
}

// Render substitutes every bound placeholder in tpl and
// returns the result. Replacement values are written
// verbatim and never re-scanned, so a value containing
// placeholder syntax does not trigger further
// substitution. Rendering a fully-bound template twice
// yields the same text. A start tag that never closes
// is not a placeholder: it is copied through as literal
// text, in strict mode too.
func (en *Engine) Render(tpl string) (string, error) {
	const errCtx = "rendering template"

	startTag, endTag := en.tags()

	out, err := fasttemplate.ExecuteFuncStringWithErr(
		tpl, startTag, endTag,
		func(w io.Writer, tag string) (int, error) {
			if val, ok := en.Bindings[tag]; ok {
				return w.Write([]byte(val))
			}

			if en.Strict {
				return 0, fmt.Errorf(
					"%w: %s", ErrMissingBinding, tag,
				)
			}

			return w.Write(
				[]byte(startTag + tag + endTag),
			)
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// RenderFile reads a template, renders it, and writes
// the result. If tplPath is empty the template is read
// from stdin; if outPath is empty the result goes to
// stdout. If executable is true the output file
// receives mode 0777 instead of 0666.
func (en *Engine) RenderFile(
	tplPath string,
	outPath string,
	executable bool,
) error {
	const errCtx = "rendering template file"

	tpl, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	rendered, err := en.Render(string(tpl))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out, closer, err := en.openOutput(
		outPath, executable,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if closer != nil {
		defer closer()
	}

	if _, err := io.WriteString(out, rendered); err != nil {
		return fmt.Errorf(
			"%s: writing output: %w", errCtx, err,
		)
	}

	return nil
}

// Placeholders returns the distinct placeholder names
// referenced by tpl, in order of first appearance.
// Empty tags default to double braces.
func Placeholders(
	tpl string,
	startTag string,
	endTag string,
) ([]string, error) {
	const errCtx = "listing placeholders"

	if startTag == "" {
		startTag = "{{"
	}

	if endTag == "" {
		endTag = "}}"
	}

	seen := make(map[string]struct{})

	var names []string

	_, err := fasttemplate.ExecuteFuncStringWithErr(
		tpl, startTag, endTag,
		func(_ io.Writer, tag string) (int, error) {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				names = append(names, tag)
			}

			return 0, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return names, nil
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

// readTemplate reads the template from a file path. If
// tplPath is empty it reads from stdin.
func (en *Engine) readTemplate(
	tplPath string,
) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// openOutput returns a writer for the result. When
// outPath is empty it returns stdout. The returned
// closer function must be called to finalize the file
// (may be nil for stdout).
func (en *Engine) openOutput(
	outPath string,
	executable bool,
) (io.Writer, func(), error) {
	const errCtx = "opening output"

	if outPath == "" {
		return os.Stdout, nil, nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return fi, func() {
		_ = fi.Close() //nolint:errcheck // best-effort close
	}, nil
}
