package git

// IsRootPathForTest exposes isRootPath to external
// tests.
var IsRootPathForTest = isRootPath
