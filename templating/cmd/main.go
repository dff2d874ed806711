// Binary render substitutes {{PLACEHOLDER}} tokens in a
// template file using binding files and NAME=VALUE
// assignments, and writes the rendered result.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/springforge/bindings"
	"github.com/byte4ever/springforge/templating"
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
	const errCtx = "render"

	var (
		bindingFiles arrayFlags
		assigns      arrayFlags
		tpl          string
		output       string
		startTag     string
		endTag       string
		strict       bool
		executable   bool
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
		&tpl, "template", "",
		"input template file path (stdin if empty)",
	)

	flag.StringVar(
		&output, "output", "",
		"output file path (stdout if empty)",
	)

	flag.StringVar(
		&startTag, "start-tag", "{{",
		"start tag for template placeholders",
	)

	flag.StringVar(
		&endTag, "end-tag", "}}",
		"end tag for template placeholders",
	)

	flag.BoolVar(
		&strict, "strict", false,
		"fail on placeholders with no binding",
	)

	flag.BoolVar(
		&executable, "executable", false,
		"set executable bit on output file",
	)

	flag.Parse()

	set, err := bindings.Resolve(bindingFiles, assigns)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	en := templating.Engine{
		StartTag: startTag,
		EndTag:   endTag,
		Bindings: set,
		Strict:   strict,
	}

	if err := en.RenderFile(
		tpl, output, executable,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
