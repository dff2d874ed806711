package git

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	oe "os/exec"
	"path/filepath"
	"strings"

	"github.com/byte4ever/springforge/migrate/exec"
)

// Repo is a local clone of a git repository. Create
// with Clone, and call Clean when done.
type Repo struct {
	// Dir is the filesystem location of the clone.
	Dir string
	// RemoteName is the name of the upstream remote.
	RemoteName string
}

// Clone clones a repository into dir. Pass the full
// repository URL as repo (e.g.
// "https://github.com/org/repo.git"). mirrorDir is an
// optional local mirror used as a reference clone. When
// projectPath is non-root only that subtree is checked
// out via sparse-checkout, which keeps monorepo clones
// small.
//
//nolint:gosec // file paths originate from CLI flags
func Clone(
	ctx context.Context,
	repo string,
	dir string,
	mirrorDir string,
	primaryBranch string,
	projectPath string,
) (*Repo, error) {
	const errCtx = "cloning repository"

	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf(
			"%s: remove dir: %w", errCtx, err,
		)
	}

	remoteName := "origin"

	args := []string{
		"clone",
		"--no-checkout",
		"--single-branch",
		"--branch", primaryBranch,
		"--filter=blob:none",
		"--no-tags",
		"--origin", remoteName,
	}

	if mirrorDir != "" {
		args = append(args, "--reference", mirrorDir)
	}

	args = append(args, repo, dir)
	exec.MustEx(ctx, "", "git", args...)

	// Enable sparse-checkout when restricting to a
	// subdirectory.
	if !isRootPath(projectPath) {
		exec.MustEx(
			ctx, dir, "git",
			"config", "--local",
			"core.sparsecheckout", "true",
		)

		genPath := fmt.Sprintf("%s/\n", projectPath)
		sparsePath := filepath.Join(
			dir, ".git", "info", "sparse-checkout",
		)

		//nolint:gosec // mode 0644 is intentional
		err := os.WriteFile(
			sparsePath,
			[]byte(genPath),
			0o644,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: write sparse-checkout: %w",
				errCtx, err,
			)
		}
	}

	exec.MustEx(ctx, dir, "git", "checkout", primaryBranch)

	return &Repo{
		Dir:        dir,
		RemoteName: remoteName,
	}, nil
}

// Clean removes the local clone directory.
func (r *Repo) Clean() error {
	const errCtx = "cleaning repository"

	if err := os.RemoveAll(r.Dir); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// SwitchToBranch switches to branch, creating it from
// primaryBranch if it does not exist. Returns true when
// the branch was newly created.
func (r *Repo) SwitchToBranch(
	ctx context.Context,
	branch string,
	primaryBranch string,
) bool {
	if _, err := exec.Ex(
		ctx, r.Dir, "git", "checkout", branch,
	); err != nil {
		// Branch does not exist yet: create and
		// check out.
		exec.MustEx(
			ctx, r.Dir, "git",
			"branch", branch, primaryBranch,
		)
		exec.MustEx(
			ctx, r.Dir, "git", "checkout", branch,
		)

		return true
	}

	return false
}

// RecreateBranch discards the content of branch and
// resets it from primaryBranch.
func (r *Repo) RecreateBranch(
	ctx context.Context,
	branch string,
	primaryBranch string,
) {
	exec.MustEx(
		ctx, r.Dir, "git", "checkout", primaryBranch,
	)
	exec.MustEx(
		ctx, r.Dir, "git",
		"branch", "-f", branch, primaryBranch,
	)
	exec.MustEx(ctx, r.Dir, "git", "checkout", branch)
}

// GetLastCommitMessage returns the most recent commit
// message on the current branch. Returns empty string
// on error.
func (r *Repo) GetLastCommitMessage(
	ctx context.Context,
) string {
	msg, err := exec.Ex(
		ctx, r.Dir, "git", "log", "-1", "--pretty=%B",
	)
	if err != nil {
		return ""
	}

	return msg
}

// Commit stages all changes under projectPath and
// commits them. Returns true when changes were
// committed, false when the tree was clean.
func (r *Repo) Commit(
	ctx context.Context,
	message string,
	projectPath string,
) bool {
	if isRootPath(projectPath) {
		exec.MustEx(ctx, r.Dir, "git", "add", ".")
	} else {
		exec.MustEx(
			ctx, r.Dir, "git", "add", projectPath,
		)
	}

	if r.IsClean() {
		return false
	}

	exec.MustEx(
		ctx, r.Dir, "git",
		"commit", "-a", "-m", message,
	)

	return true
}

// GetChangedFiles returns file paths that differ from
// the index (unstaged changes).
func (r *Repo) GetChangedFiles(
	ctx context.Context,
) []string {
	out, err := exec.Ex(
		ctx, r.Dir, "git", "diff", "--name-only",
	)
	if err != nil {
		slog.Error(
			"failed to get changed files",
			"error", err,
		)

		return nil
	}

	var files []string

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		files = append(files, sc.Text())
	}

	if err := sc.Err(); err != nil {
		slog.Error(
			"failed to scan changed files",
			"error", err,
		)

		return nil
	}

	return files
}

// IsClean reports whether the working tree has no
// uncommitted changes.
func (r *Repo) IsClean() bool {
	//nolint:gosec // args are constants
	cmd := oe.CommandContext(
		context.Background(),
		"git", "status", "--porcelain",
	)
	cmd.Dir = r.Dir

	by, err := cmd.CombinedOutput()
	if err != nil {
		slog.Error(
			"failed to check repo status",
			"error", err,
		)

		return false
	}

	return len(by) == 0
}

// Push pushes the given branch to the remote, setting
// its upstream. All changes should be committed before
// calling Push.
func (r *Repo) Push(ctx context.Context, branch string) {
	exec.MustEx(
		ctx, r.Dir, "git",
		"push", r.RemoteName,
		"-f", "--set-upstream", branch,
	)
}

// isRootPath reports whether projectPath refers to the
// repository root.
func isRootPath(projectPath string) bool {
	return projectPath == "" || projectPath == "."
}
