// Package buildinfo carries identifiers stamped in at link time.
package buildinfo

import "fmt"

// Stamped with -ldflags "-X spindle/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
)

// Short picks the first real identifier for log banners: a release version,
// else the commit, else "dev".
func Short() string {
	switch {
	case Version != "" && Version != "dev":
		return Version
	case Commit != "" && Commit != "unknown":
		return Commit
	}
	return "dev"
}

// String returns the full identifier printed by -version.
func String() string {
	return fmt.Sprintf("spindle %s (commit %s)", Version, Commit)
}
