// Package runner orchestrates an end-to-end framework
// migration: it clones the service repository, scans
// it for migration issues, applies the mechanical
// fixes, commits them on a migration branch, pushes,
// and creates a pull request.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/byte4ever/springforge/migrate/fixes"
	"github.com/byte4ever/springforge/migrate/fixlog"
	"github.com/byte4ever/springforge/migrate/git"
	"github.com/byte4ever/springforge/migrate/scan"
)

// Config holds all settings for a migration run. Use a
// Config struct instead of many arguments.
type Config struct {
	// GitRepo is the remote repository URL.
	GitRepo string

	// GitMirror is an optional local mirror path.
	GitMirror string

	// ProjectPath restricts the git sparse checkout
	// to a subdirectory (empty means root).
	ProjectPath string

	// TmpDir is the directory for temporary clones.
	TmpDir string

	// PrimaryBranch is the main branch (e.g. "main").
	PrimaryBranch string

	// MigrationBranch is the branch the fixes are
	// committed to.
	MigrationBranch string

	// PRTitle is the title for the created pull
	// request and the commit message headline.
	PRTitle string

	// PRBody is prepended to the scan report in the
	// pull request body.
	PRBody string

	// DryRun skips push and PR creation when true.
	DryRun bool

	// Provider creates pull requests on a git
	// hosting platform.
	Provider git.Provider
}

// Run executes the full migration workflow: clone,
// scan, fix, commit, push, and create a PR.
func Run(ctx context.Context, cfg Config) error {
	const errCtx = "running migration"

	// Step 1: Clone the service repository.
	cloneDir := filepath.Join(cfg.TmpDir, "migration")

	repo, err := git.Clone(
		ctx,
		cfg.GitRepo,
		cloneDir,
		cfg.GitMirror,
		cfg.PrimaryBranch,
		cfg.ProjectPath,
	)
	if err != nil {
		return fmt.Errorf(
			"%s: clone repo: %w", errCtx, err,
		)
	}

	defer func() {
		if cleanErr := repo.Clean(); cleanErr != nil {
			slog.Error(
				"failed to clean repo",
				"error", cleanErr,
			)
		}
	}()

	// Step 2: Switch to the migration branch. If a
	// previous run already committed fixes on it,
	// recreate it from the primary branch so the fix
	// set reflects the current upstream state.
	isNew := repo.SwitchToBranch(
		ctx, cfg.MigrationBranch, cfg.PrimaryBranch,
	)

	if !isNew {
		lastMsg := repo.GetLastCommitMessage(ctx)
		prev := fixlog.ExtractFixes(lastMsg)

		if len(prev) > 0 {
			slog.Info(
				"recreating migration branch",
				"branch", cfg.MigrationBranch,
				"previous_fixes", len(prev),
			)

			repo.RecreateBranch(
				ctx,
				cfg.MigrationBranch,
				cfg.PrimaryBranch,
			)
		}
	}

	// Step 3: Scan the project.
	projectRoot := projectDir(
		repo.Dir, cfg.ProjectPath,
	)

	rep, err := scan.Project(projectRoot)
	if err != nil {
		return fmt.Errorf(
			"%s: scan project: %w", errCtx, err,
		)
	}

	critical, warning, info := rep.Counts()
	slog.Info(
		"scan complete",
		"critical", critical,
		"warning", warning,
		"info", info,
	)

	// Step 4: Apply the mechanical fixes.
	applied, err := fixes.Apply(projectRoot)
	if err != nil {
		return fmt.Errorf(
			"%s: apply fixes: %w", errCtx, err,
		)
	}

	if len(applied) == 0 {
		slog.Info("no automatic fixes to apply")

		return nil
	}

	// Step 5: Commit with the applied-fix list
	// embedded in the message.
	msg := fixlog.Generate(cfg.PRTitle, applied)

	committed := repo.Commit(
		ctx, msg, cfg.ProjectPath,
	)
	if !committed {
		slog.Info(
			"working tree clean, skipping push",
		)

		return nil
	}

	// Step 6: Push and create the PR.
	if cfg.DryRun {
		slog.Info(
			"dry run: skipping push and PR creation",
			"branch", cfg.MigrationBranch,
			"fixes", len(applied),
		)

		return nil
	}

	repo.Push(ctx, cfg.MigrationBranch)

	// Rescan so the PR body lists only the work left
	// after the automated fixes.
	rep, err = scan.Project(projectRoot)
	if err != nil {
		return fmt.Errorf(
			"%s: rescan project: %w", errCtx, err,
		)
	}

	body, err := prBody(cfg.PRBody, rep)
	if err != nil {
		return fmt.Errorf(
			"%s: render PR body: %w", errCtx, err,
		)
	}

	if err := cfg.Provider.CreatePR(
		ctx,
		cfg.MigrationBranch,
		cfg.PrimaryBranch,
		cfg.PRTitle,
		body,
	); err != nil {
		return fmt.Errorf(
			"%s: create PR: %w", errCtx, err,
		)
	}

	return nil
}

// prBody appends the scan report to the configured
// body so reviewers see the remaining manual work.
func prBody(
	base string,
	rep *scan.Report,
) (string, error) {
	var sb strings.Builder

	if base != "" {
		sb.WriteString(base)
		sb.WriteString("\n\n")
	}

	if err := rep.WriteText(&sb); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// projectDir resolves the scanned directory inside the
// clone for the configured project path.
func projectDir(
	cloneDir string,
	projectPath string,
) string {
	if projectPath == "" || projectPath == "." {
		return cloneDir
	}

	return filepath.Join(cloneDir, projectPath)
}
