// Package bitbucket implements a git.Provider that creates
// migration pull requests on Bitbucket Server through its REST
// API. Configure with a Config containing the server base URL,
// project key, repository slug, and basic-auth credentials.
package bitbucket
