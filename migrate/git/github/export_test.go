package github

import (
	gh "github.com/google/go-github/v68/github"
)

// NewProviderWithClientForTest builds a Provider around
// a preconfigured API client, so tests can point it at
// a local server.
func NewProviderWithClientForTest(
	client *gh.Client,
	cfg Config,
) *Provider {
	return &Provider{
		client:    client,
		repoOwner: cfg.RepoOwner,
		repo:      cfg.Repo,
		draft:     cfg.Draft,
		labels:    cfg.Labels,
	}
}
