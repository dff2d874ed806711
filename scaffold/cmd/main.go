// Binary scaffold instantiates a template pack into a
// project directory using caller-supplied placeholder
// bindings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/springforge/bindings"
	"github.com/byte4ever/springforge/scaffold"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func run() error {
	const errCtx = "scaffold"

	var (
		bindingFiles arrayFlags
		assigns      arrayFlags
		pack         string
		dest         string
		force        bool
		skipHooks    bool
		dryRun       bool
	)

	flag.Var(
		&bindingFiles,
		"bindings",
		"path to KEY VALUE binding file (repeatable)",
	)

	flag.Var(
		&assigns,
		"set",
		"binding in NAME=VALUE format (repeatable)",
	)

	flag.StringVar(
		&pack, "pack", "",
		"pack directory containing pack.yaml",
	)

	flag.StringVar(
		&dest, "dest", ".",
		"target project directory",
	)

	flag.BoolVar(
		&force, "force", false,
		"overwrite hand-edited generated files",
	)

	flag.BoolVar(
		&skipHooks, "skip-hooks", false,
		"skip post-generate commands",
	)

	flag.BoolVar(
		&dryRun, "dry-run", false,
		"list planned outputs without writing",
	)

	flag.Parse()

	if pack == "" {
		return fmt.Errorf(
			"%s: -pack must be set", errCtx,
		)
	}

	set, err := bindings.Resolve(bindingFiles, assigns)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	gen := scaffold.Generator{
		PackDir:   pack,
		DestDir:   dest,
		Bindings:  set,
		Force:     force,
		SkipHooks: skipHooks,
		DryRun:    dryRun,
	}

	res, err := gen.Run(context.Background())
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for _, pa := range res.Written {
		slog.Info("generated", "path", pa)
	}

	for _, pa := range res.Skipped {
		slog.Info(
			"skipped edited file", "path", pa,
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
