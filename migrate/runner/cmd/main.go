// Command migrate runs an end-to-end framework
// migration: it clones a service repository, scans it
// for Spring Boot 4 migration issues, applies the
// mechanical fixes, and opens a pull request on the
// configured git hosting platform.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/springforge/migrate/git"
	"github.com/byte4ever/springforge/migrate/git/bitbucket"
	"github.com/byte4ever/springforge/migrate/git/github"
	"github.com/byte4ever/springforge/migrate/git/gitlab"
	"github.com/byte4ever/springforge/migrate/runner"
)

// sliceFlag implements flag.Value for multi-value
// string flags (repeated --flag=val usage).
type sliceFlag []string

// String returns the flag value as a comma-separated
// string representation.
func (s *sliceFlag) String() string {
	if s == nil {
		return ""
	}

	return strings.Join(*s, ",")
}

// Set appends a value to the slice.
func (s *sliceFlag) Set(val string) error {
	*s = append(*s, val)

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "running migrate"

	// Git repository flags.
	gitRepo := flag.String(
		"git_repo", "",
		"Remote git repository URL",
	)
	gitMirror := flag.String(
		"git_mirror", "",
		"Local git mirror for reference clones",
	)
	projectPath := flag.String(
		"project_path", "",
		"Subdirectory holding the service project",
	)
	tmpDir := flag.String(
		"tmp_dir", os.TempDir(),
		"Temporary directory for clones",
	)

	// Branch flags.
	primaryBranch := flag.String(
		"primary_branch", "main",
		"Primary branch name",
	)
	migrationBranch := flag.String(
		"migration_branch", "migration/boot-4",
		"Branch the fixes are committed to",
	)

	// PR flags.
	prTitle := flag.String(
		"pr_title", "Migrate to Spring Boot 4",
		"Title for the created pull request",
	)
	prBody := flag.String(
		"pr_body", "",
		"Body prepended to the scan report",
	)
	dryRun := flag.Bool(
		"dry_run", false,
		"Skip push and PR creation",
	)

	var prLabels sliceFlag

	flag.Var(
		&prLabels,
		"pr_label",
		"Label for the created PR (repeatable)",
	)

	// Git provider selection.
	gitServer := flag.String(
		"git_server", "github",
		"Git hosting platform: github, gitlab, "+
			"or bitbucket",
	)

	// GitHub-specific flags.
	ghRepoOwner := flag.String(
		"github_repo_owner", "",
		"GitHub repository owner",
	)
	ghRepo := flag.String(
		"github_repo", "",
		"GitHub repository name",
	)
	ghToken := flag.String(
		"github_access_token", "",
		"GitHub personal access token",
	)
	ghEnterprise := flag.String(
		"github_enterprise_host", "",
		"GitHub Enterprise hostname",
	)
	ghDraft := flag.Bool(
		"github_draft", false,
		"Open the PR as a draft",
	)

	// GitLab-specific flags.
	glHost := flag.String(
		"gitlab_host", "",
		"GitLab instance URL",
	)
	glRepo := flag.String(
		"gitlab_repo", "",
		"GitLab project path (org/project)",
	)
	glToken := flag.String(
		"gitlab_access_token", "",
		"GitLab personal access token",
	)
	glRemoveSource := flag.Bool(
		"gitlab_remove_source_branch", true,
		"Delete the migration branch on merge",
	)
	glSquash := flag.Bool(
		"gitlab_squash", false,
		"Squash migration commits on merge",
	)

	// Bitbucket-specific flags.
	bbBaseURL := flag.String(
		"bitbucket_base_url", "",
		"Bitbucket Server base URL",
	)
	bbProjectKey := flag.String(
		"bitbucket_project_key", "",
		"Bitbucket project key",
	)
	bbRepoSlug := flag.String(
		"bitbucket_repo_slug", "",
		"Bitbucket repository slug",
	)
	bbUser := flag.String(
		"bitbucket_user", "",
		"Bitbucket API username",
	)
	bbPassword := flag.String(
		"bitbucket_password", "",
		"Bitbucket API password or token",
	)

	flag.Parse()

	provider, err := newGitProvider(
		*gitServer,
		providerFlags{
			prLabels:       prLabels,
			ghRepoOwner:    *ghRepoOwner,
			ghRepo:         *ghRepo,
			ghToken:        *ghToken,
			ghEnterprise:   *ghEnterprise,
			ghDraft:        *ghDraft,
			glHost:         *glHost,
			glRepo:         *glRepo,
			glToken:        *glToken,
			glRemoveSource: *glRemoveSource,
			glSquash:       *glSquash,
			bbBaseURL:      *bbBaseURL,
			bbProjectKey:   *bbProjectKey,
			bbRepoSlug:     *bbRepoSlug,
			bbUser:         *bbUser,
			bbPassword:     *bbPassword,
		},
		*dryRun,
	)
	if err != nil {
		return fmt.Errorf(
			"%s: create provider: %w", errCtx, err,
		)
	}

	cfg := runner.Config{
		GitRepo:         *gitRepo,
		GitMirror:       *gitMirror,
		ProjectPath:     *projectPath,
		TmpDir:          *tmpDir,
		PrimaryBranch:   *primaryBranch,
		MigrationBranch: *migrationBranch,
		PRTitle:         *prTitle,
		PRBody:          *prBody,
		DryRun:          *dryRun,
		Provider:        provider,
	}

	if err := runner.Run(
		context.Background(), cfg,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// providerFlags bundles provider-specific flag values
// to keep newGitProvider under the 4-argument limit.
type providerFlags struct {
	prLabels       []string
	ghRepoOwner    string
	ghRepo         string
	ghToken        string
	ghEnterprise   string
	ghDraft        bool
	glHost         string
	glRepo         string
	glToken        string
	glRemoveSource bool
	glSquash       bool
	bbBaseURL      string
	bbProjectKey   string
	bbRepoSlug     string
	bbUser         string
	bbPassword     string
}

// newGitProvider creates a git.Provider based on the
// server name. Pattern: Factory -- selects platform
// implementation at runtime. Dry runs never reach the
// provider, so credentials are not required there.
func newGitProvider(
	server string,
	pf providerFlags,
	dryRun bool,
) (git.Provider, error) {
	const errCtx = "creating git provider"

	if dryRun {
		return git.ProviderFunc(func(
			_ context.Context,
			from string,
			to string,
			title string,
			_ string,
		) error {
			slog.Info(
				"dry run provider",
				"from", from,
				"to", to,
				"title", title,
			)

			return nil
		}), nil
	}

	switch server {
	case "github":
		p, err := github.NewProvider(github.Config{
			RepoOwner:      pf.ghRepoOwner,
			Repo:           pf.ghRepo,
			AccessToken:    pf.ghToken,
			EnterpriseHost: pf.ghEnterprise,
			Draft:          pf.ghDraft,
			Labels:         pf.prLabels,
		})
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return p, nil

	case "gitlab":
		p, err := gitlab.NewProvider(gitlab.Config{
			Host:               pf.glHost,
			Repo:               pf.glRepo,
			AccessToken:        pf.glToken,
			Labels:             pf.prLabels,
			RemoveSourceBranch: pf.glRemoveSource,
			Squash:             pf.glSquash,
		})
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return p, nil

	case "bitbucket":
		p, err := bitbucket.NewProvider(
			bitbucket.Config{
				BaseURL:    pf.bbBaseURL,
				ProjectKey: pf.bbProjectKey,
				RepoSlug:   pf.bbRepoSlug,
				User:       pf.bbUser,
				Password:   pf.bbPassword,
			},
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return p, nil

	default:
		return nil, fmt.Errorf(
			"%s: unknown server %q", errCtx, server,
		)
	}
}
