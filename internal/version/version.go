// Package version holds build metadata injected via ldflags.
package version

// Set by the release build via -ldflags.
//
//nolint:revive
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
