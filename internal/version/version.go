// Package version holds build metadata injected with ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/aepsite/internal/version.Version=v0.3.0"
package version

import "fmt"

// Version contains the application version information.
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	return fmt.Sprintf("aepsite %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
