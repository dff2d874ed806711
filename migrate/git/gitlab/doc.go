// Package gitlab implements a git.Provider that creates migration
// merge requests on GitLab (gitlab.com or self-managed). Configure
// with a Config containing the full project path and an access
// token; set Host for self-managed installations. The PR body is
// carried as the MR description, and labels, source-branch removal,
// and squash-on-merge can be set for the migration workflow.
package gitlab
