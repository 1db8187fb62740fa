// Package version exposes build information injected at link time.
package version

var (
	// Version is the semantic version of the build.
	//nolint:gochecknoglobals // Overridden with -ldflags "-X" at build time.
	Version = "0.1.0"
	// Commit is the VCS revision of the build.
	//nolint:gochecknoglobals // Overridden with -ldflags "-X" at build time.
	Commit = "none"
	// BuildTime is the timestamp of the build.
	//nolint:gochecknoglobals // Overridden with -ldflags "-X" at build time.
	BuildTime = "unknown"
)

// Short returns the version only.
func Short() string {
	return Version
}

// Full returns the version with commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
