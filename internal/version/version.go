package version

import "fmt"

// Version is the sitecfg release, injected at build time:
// go build -ldflags "-X github.com/kevinreber/sitecfg/internal/version.Version=v0.3.0".
var Version = "dev"

// Build metadata, also injected via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	return fmt.Sprintf("sitecfg %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
