// Package version carries the tileboard build metadata shown in the About
// dialog and the startup log line.
package version

// Overridden at release time via
// -ldflags "-X tileboard/internal/version.Version=... (etc.)".
var (
	// Version is the semantic version; "-dev" marks local builds.
	Version = "0.1.0-dev"

	// BuildTime is the UTC time the binary was built.
	BuildTime = "unknown"

	// GitCommit is the git commit hash the binary was built from.
	GitCommit = "unknown"
)
