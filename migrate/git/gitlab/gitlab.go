package gitlab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	gl "gitlab.com/gitlab-org/api/client-go"
)

// Config holds the settings needed to create a GitLab
// merge request provider.
type Config struct {
	// Host is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	Host string
	// Repo is the full project path
	// (e.g. "org/project").
	Repo string
	// AccessToken is a personal or project access
	// token used for authentication.
	AccessToken string
	// Labels are attached to the merge request
	// (e.g. "migration", "spring-boot-4").
	Labels []string
	// RemoveSourceBranch deletes the migration
	// branch once the MR is merged, keeping reruns
	// from tripping over a stale branch.
	RemoveSourceBranch bool
	// Squash collapses the migration commits into
	// one on merge.
	Squash bool
}

// Provider creates migration merge requests on GitLab.
//
// Pattern: Strategy -- implements git.Provider.
type Provider struct {
	client             *gl.Client
	repo               string
	labels             gl.LabelOptions
	removeSourceBranch bool
	squash             bool
}

// NewProvider validates cfg and returns a Provider
// ready to create merge requests.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating gitlab provider"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	host := cfg.Host
	if host == "" {
		host = "https://gitlab.com"
	}

	client, err := gl.NewClient(
		cfg.AccessToken,
		gl.WithBaseURL(host),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: new client: %w", errCtx, err,
		)
	}

	return &Provider{
		client:             client,
		repo:               cfg.Repo,
		labels:             gl.LabelOptions(cfg.Labels),
		removeSourceBranch: cfg.RemoveSourceBranch,
		squash:             cfg.Squash,
	}, nil
}

// CreatePR creates a merge request from branch "from"
// into branch "to" carrying the migration commit. The
// body (the applied-fix summary and scan report)
// becomes the MR description, and the configured
// labels and merge behavior are set on creation. If a
// MR already exists for the source branch (HTTP 409)
// it is reused as is.
func (p *Provider) CreatePR(
	_ context.Context,
	from string,
	to string,
	title string,
	body string,
) error {
	const errCtx = "creating gitlab merge request"

	opts := gl.CreateMergeRequestOptions{
		Title:              &title,
		Description:        &body,
		SourceBranch:       &from,
		TargetBranch:       &to,
		RemoveSourceBranch: &p.removeSourceBranch,
		Squash:             &p.squash,
	}

	if len(p.labels) > 0 {
		opts.Labels = &p.labels
	}

	created, resp, err := p.client.MergeRequests.CreateMergeRequest(
		p.repo, &opts,
	)
	if err == nil {
		slog.Info(
			"created merge request",
			"url", created.WebURL,
		)

		return nil
	}

	// HTTP 409: MR already exists for this source
	// branch.
	if resp != nil &&
		resp.StatusCode == http.StatusConflict {
		slog.Info(
			"reusing existing merge request",
		)

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
				"gitlab response",
				"body", string(rb),
			)
		}
	}

	return fmt.Errorf("%s: %w", errCtx, err)
}
