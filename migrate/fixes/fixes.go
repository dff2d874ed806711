package fixes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/byte4ever/springforge/migrate/scan"
)

// Applied records one automated rewrite.
type Applied struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Description string `json:"description"`
}

// Apply rewrites the mechanical subset of migration
// issues in place: relocated imports and renamed test
// annotations in Java sources, and moved Jackson
// configuration keys in application.properties and
// application.yml. It returns the list of rewrites in
// file order. Non-mechanical findings (dependency
// coordinates, missing schemas) are left to the scan
// report.
func Apply(root string) ([]Applied, error) {
	const errCtx = "applying fixes"

	var applied []Applied

	err := filepath.WalkDir(
		root,
		func(pa string, de fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if de.IsDir() ||
				!strings.HasSuffix(de.Name(), ".java") {
				return nil
			}

			rel, relErr := filepath.Rel(root, pa)
			if relErr != nil {
				return relErr
			}

			fixed, fixErr := rewriteFile(
				pa, rel, fixJavaLine,
			)
			if fixErr != nil {
				return fixErr
			}

			applied = append(applied, fixed...)

			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	propPath := filepath.Join(
		root,
		"src/main/resources/application.properties",
	)

	if _, err := os.Stat(propPath); err == nil {
		fixed, fixErr := rewriteFile(
			propPath,
			"src/main/resources/application.properties",
			fixPropertiesLine,
		)
		if fixErr != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, fixErr,
			)
		}

		applied = append(applied, fixed...)
	}

	ymlApplied, err := fixApplicationYAML(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	applied = append(applied, ymlApplied...)

	return applied, nil
}

// lineFixer rewrites a single line, reporting a
// description for each change it makes.
type lineFixer func(line string) (string, []string)

// rewriteFile applies a line fixer to every line of a
// file and writes the file back only when something
// changed.
func rewriteFile(
	path string,
	rel string,
	fix lineFixer,
) ([]Applied, error) {
	const errCtx = "rewriting file"

	raw, err := os.ReadFile(path) //nolint:gosec // paths from walk
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	lines := strings.Split(string(raw), "\n")

	var applied []Applied

	for idx, line := range lines {
		fixed, descs := fix(line)
		if len(descs) == 0 {
			continue
		}

		lines[idx] = fixed

		for _, desc := range descs {
			applied = append(applied, Applied{
				File:        rel,
				Line:        idx + 1,
				Description: desc,
			})
		}
	}

	if len(applied) == 0 {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.WriteFile(
		path,
		[]byte(strings.Join(lines, "\n")),
		info.Mode().Perm(),
	); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return applied, nil
}

// fixJavaLine applies import relocations and annotation
// renames to one Java source line. Commented-out lines
// are left alone.
func fixJavaLine(line string) (string, []string) {
	if strings.HasPrefix(
		strings.TrimSpace(line), "//",
	) {
		return line, nil
	}

	var descs []string

	for old, upd := range scan.RelocatedImports {
		if strings.Contains(line, "import "+old) {
			line = strings.ReplaceAll(
				line, "import "+old, "import "+upd,
			)
			descs = append(
				descs, "relocated import "+old,
			)
		}
	}

	for old, upd := range scan.RelocatedContainerImports {
		if strings.Contains(line, "import "+old) {
			line = strings.ReplaceAll(
				line, "import "+old, "import "+upd,
			)
			descs = append(
				descs, "relocated import "+old,
			)
		}
	}

	for old, upd := range scan.RenamedTestAnnotations {
		if strings.Contains(line, old) {
			line = strings.ReplaceAll(line, old, upd)
			descs = append(
				descs,
				"renamed annotation "+old+" to "+upd,
			)
		}
	}

	return line, descs
}

// fixPropertiesLine moves spring.jackson.read/write
// keys under spring.jackson.json. Commented lines are
// left alone.
func fixPropertiesLine(line string) (string, []string) {
	if strings.HasPrefix(
		strings.TrimSpace(line), "#",
	) {
		return line, nil
	}

	var descs []string

	for _, prefix := range []string{"read", "write"} {
		old := "spring.jackson." + prefix + "."
		upd := "spring.jackson.json." + prefix + "."

		if strings.Contains(line, old) {
			line = strings.ReplaceAll(line, old, upd)
			descs = append(
				descs,
				"moved "+old+"* under spring.jackson.json",
			)
		}
	}

	return line, descs
}
