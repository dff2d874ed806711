package scan

import (
	"fmt"
	"io"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	const errCtx = "encoding report"

	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// WriteText renders the report as a grouped plain-text
// summary: detected versions, severity counts, then one
// section per category and severity.
func (r *Report) WriteText(w io.Writer) error {
	const errCtx = "writing report"

	rule := strings.Repeat("=", 72)

	var sb strings.Builder

	sb.WriteString(rule + "\n")
	sb.WriteString("MIGRATION SCAN REPORT\n")
	sb.WriteString(rule + "\n\n")

	fmt.Fprintf(
		&sb, "Spring Boot:     %s\n", r.SpringBootVersion,
	)
	fmt.Fprintf(
		&sb, "Spring Modulith: %s\n", r.SpringModulithVersion,
	)
	fmt.Fprintf(
		&sb, "Testcontainers:  %s\n", r.TestcontainersVersion,
	)

	if len(r.Issues) == 0 {
		sb.WriteString("\nNo migration issues found.\n")

		if _, err := io.WriteString(
			w, sb.String(),
		); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	critical, warning, info := r.Counts()

	sb.WriteString("\nSummary:\n")
	fmt.Fprintf(&sb, "  Critical: %d\n", critical)
	fmt.Fprintf(&sb, "  Warnings: %d\n", warning)
	fmt.Fprintf(&sb, "  Info:     %d\n", info)
	fmt.Fprintf(&sb, "  Total:    %d\n", len(r.Issues))

	groups := make(map[string][]Issue)
	for _, is := range r.Issues {
		key := is.Category + " [" +
			string(is.Severity) + "]"
		groups[key] = append(groups[key], is)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		issues := groups[key]

		fmt.Fprintf(
			&sb, "\n%s (%d issues)\n", key, len(issues),
		)
		sb.WriteString(strings.Repeat("-", 72) + "\n")

		for _, is := range issues {
			fmt.Fprintf(
				&sb, "  %s:%d\n", is.File, is.Line,
			)
			fmt.Fprintf(
				&sb, "    Issue: %s\n", is.Description,
			)
			fmt.Fprintf(
				&sb, "    Fix:   %s\n", is.Suggestion,
			)
		}
	}

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(
		"Apply fixes in phases: Dependencies -> Code" +
			" -> Configuration -> Testing.\n",
	)
	sb.WriteString(
		"Start with CRITICAL issues.\n",
	)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
