package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

// Config holds the settings needed to create a GitHub
// pull request provider.
type Config struct {
	// RepoOwner is the GitHub user or organisation
	// that owns the repository.
	RepoOwner string
	// Repo is the repository name (without owner).
	Repo string
	// AccessToken is a personal access token or
	// GitHub App token used for authentication.
	AccessToken string
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname (e.g. "git.corp.example.com"). Leave
	// empty for github.com.
	EnterpriseHost string
	// Draft opens the migration PR as a draft, so CI
	// runs while the fix list is still under review.
	Draft bool
	// Labels are applied to the PR after creation
	// (e.g. "migration", "spring-boot-4").
	Labels []string
}

// Provider creates migration pull requests on GitHub.
//
// Pattern: Strategy -- implements git.Provider.
type Provider struct {
	client    *gh.Client
	repoOwner string
	repo      string
	draft     bool
	labels    []string
}

// NewProvider validates cfg and returns a Provider
// ready to create pull requests.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating github provider"

	if cfg.RepoOwner == "" {
		return nil, fmt.Errorf(
			"%s: repo owner must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	client := gh.NewClient(nil).
		WithAuthToken(cfg.AccessToken)

	if cfg.EnterpriseHost != "" {
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}
	}

	return &Provider{
		client:    client,
		repoOwner: cfg.RepoOwner,
		repo:      cfg.Repo,
		draft:     cfg.Draft,
		labels:    cfg.Labels,
	}, nil
}

// CreatePR creates a pull request from branch "from"
// into branch "to" carrying the migration commit. The
// PR is opened as a draft when configured, and the
// configured labels are applied after creation. If a
// PR already exists for the branch pair (HTTP 422) it
// is reused as is.
func (p *Provider) CreatePR(
	ctx context.Context,
	from string,
	to string,
	title string,
	body string,
) error {
	const errCtx = "creating github pull request"

	pr := &gh.NewPullRequest{
		Title: &title,
		Head:  &from,
		Base:  &to,
		Body:  &body,
		Draft: &p.draft,
	}

	created, resp, err := p.client.PullRequests.Create(
		ctx, p.repoOwner, p.repo, pr,
	)
	if err == nil {
		slog.Info(
			"created pull request",
			"url", created.GetURL(),
			"draft", p.draft,
		)

		return p.applyLabels(
			ctx, created.GetNumber(),
		)
	}

	// HTTP 422: PR already exists for this
	// head/base pair.
	if resp != nil &&
		resp.StatusCode ==
			http.StatusUnprocessableEntity {
		slog.Info("reusing existing pull request")

		return nil
	}

	// Log the response body for debugging.
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close() //nolint:errcheck

		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			slog.Warn(
				"cannot read response body",
				"error", readErr,
			)
		} else {
			slog.Warn(
				"github response",
				"body", string(rb),
			)
		}
	}

	return fmt.Errorf("%s: %w", errCtx, err)
}

// applyLabels attaches the configured labels to the
// freshly created PR. GitHub models PR labels through
// the issues API.
func (p *Provider) applyLabels(
	ctx context.Context,
	number int,
) error {
	const errCtx = "labelling github pull request"

	if len(p.labels) == 0 {
		return nil
	}

	_, _, err := p.client.Issues.AddLabelsToIssue(
		ctx, p.repoOwner, p.repo, number, p.labels,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"labelled pull request",
		"number", number,
		"labels", p.labels,
	)

	return nil
}
