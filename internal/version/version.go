// Package version exposes build metadata stamped in by the release
// pipeline via -ldflags.
package version

//nolint:revive // Overwritten at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
