package runner

// Exported aliases for testing internal functions from
// the runner_test package.

// PrBodyForTest exposes prBody.
var PrBodyForTest = prBody

// ProjectDirForTest exposes projectDir.
var ProjectDirForTest = projectDir
