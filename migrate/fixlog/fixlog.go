// Package fixlog generates and parses the applied-fix
// lists embedded in migration commit messages.
package fixlog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/byte4ever/springforge/migrate/fixes"
)

const (
	begin = "--- springforge fixes begin ---"
	end   = "--- springforge fixes end ---"
)

// Lines formats applied fixes as one "file:line
// description" entry each.
func Lines(applied []fixes.Applied) []string {
	lines := make([]string, 0, len(applied))

	for _, ap := range applied {
		lines = append(lines, fmt.Sprintf(
			"%s:%d %s",
			ap.File, ap.Line, ap.Description,
		))
	}

	return lines
}

// Generate produces a commit message containing the
// applied fixes between begin/end markers.
func Generate(
	title string,
	applied []fixes.Applied,
) string {
	var sb strings.Builder

	sb.WriteString(title)
	sb.WriteByte('\n')
	sb.WriteByte('\n')
	sb.WriteString(begin)
	sb.WriteByte('\n')

	for _, line := range Lines(applied) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(end)
	sb.WriteByte('\n')

	return sb.String()
}

// ExtractFixes extracts the list of applied-fix entries
// from a commit message delimited by begin/end markers.
func ExtractFixes(msg string) []string {
	var entries []string

	betweenMarkers := false

	for _, line := range strings.Split(msg, "\n") {
		switch line {
		case begin:
			betweenMarkers = true
		case end:
			betweenMarkers = false
		default:
			if betweenMarkers {
				entries = append(entries, line)
			}
		}
	}

	if betweenMarkers {
		slog.Warn(
			"unable to find end marker in commit message",
		)

		return nil
	}

	return entries
}
