// Package version holds build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the short version string.
func Info() string {
	return Version
}

// Full returns the complete version line including commit and build date.
func Full() string {
	return fmt.Sprintf("cix %s (commit %s, built %s)", Version, Commit, BuildDate)
}
