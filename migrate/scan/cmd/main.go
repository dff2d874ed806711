// Binary scan inspects a Spring Boot project for
// framework migration issues and prints a grouped text
// or JSON report.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/byte4ever/springforge/migrate/scan"
)

func run() error {
	const errCtx = "scan"

	var (
		project  string
		output   string
		asJSON   bool
		failCrit bool
	)

	flag.StringVar(
		&project, "project", ".",
		"project directory to scan",
	)

	flag.StringVar(
		&output, "output", "",
		"report file path (default: stdout)",
	)

	flag.BoolVar(
		&asJSON, "json", false,
		"emit the report as JSON",
	)

	flag.BoolVar(
		&failCrit, "fail-on-critical", false,
		"exit non-zero when critical issues are found",
	)

	flag.Parse()

	rep, err := scan.Project(project)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	var out io.Writer = os.Stdout

	if output != "" {
		fi, err := os.Create(output) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: opening report file: %w",
				errCtx, err,
			)
		}

		defer func() {
			_ = fi.Close() //nolint:errcheck // best-effort close
		}()

		out = fi
	}

	if asJSON {
		raw, err := rep.JSON()
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if _, err := out.Write(raw); err != nil {
			return fmt.Errorf(
				"%s: writing report: %w", errCtx, err,
			)
		}
	} else if err := rep.WriteText(out); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	critical, _, _ := rep.Counts()

	if failCrit && critical > 0 {
		return fmt.Errorf(
			"%s: %d critical issues", errCtx, critical,
		)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
