// Package github implements a git.Provider that creates migration
// pull requests on GitHub (cloud or enterprise). Configure with a
// Config containing the repository owner, name, and personal access
// token. Set EnterpriseHost for GitHub Enterprise installations.
// Migration PRs can be opened as drafts and labelled so review
// queues can route them.
package github
