// Package version exposes build metadata stamped in at link time.
package version

// Set via -ldflags at build time; the defaults identify dev builds.
var (
	Version   = "dev"
	BuildTime = "unknown"
)
