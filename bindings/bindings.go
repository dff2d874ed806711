package bindings

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// LoadFiles reads binding files and merges them into a
// single map. Each line is "KEY VALUE" with the first
// space as delimiter. Lines without a space are
// silently skipped. Later files override earlier ones.
func LoadFiles(
	paths []string,
) (map[string]string, error) {
	const errCtx = "loading binding files"

	set := make(map[string]string)

	for _, pa := range paths {
		content, err := os.ReadFile(pa) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			parts := strings.SplitN(line, " ", 2)
			if len(parts) == 2 {
				set[parts[0]] = parts[1]
			}
		}
	}

	return set, nil
}

// Resolve builds a binding set from binding files and
// NAME=VALUE assignments. Assignments override file
// bindings. An assignment value may reference file
// bindings with single-brace {KEY} tags, so derived
// values like TABLE={MODULE}_orders resolve against the
// loaded files. Unknown references are preserved as-is.
func Resolve(
	files []string,
	assigns []string,
) (map[string]string, error) {
	const errCtx = "resolving bindings"

	set, err := LoadFiles(files)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	fileCtx := toTemplateContext(set)

	for _, as := range assigns {
		parts := strings.SplitN(as, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf(
				"%s: assignment must be NAME=VALUE, got %s",
				errCtx, as,
			)
		}

		set[parts[0]] = fasttemplate.ExecuteStringStd(
			parts[1], "{", "}", fileCtx,
		)
	}

	return set, nil
}

// toTemplateContext widens a string map to the
// interface map fasttemplate expects.
func toTemplateContext(
	set map[string]string,
) map[string]interface{} {
	ctx := make(map[string]interface{}, len(set))
	for key, val := range set {
		ctx[key] = val
	}

	return ctx
}
