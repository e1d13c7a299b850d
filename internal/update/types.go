// Package update checks GitHub releases for newer skel binaries and
// replaces the running executable.
package update

import (
	"context"
	"time"
)

// DefaultReleaseURL is the GitHub API endpoint for the latest release.
const DefaultReleaseURL = "https://api.github.com/repos/campus42/skel/releases/latest"

// VersionInfo describes a downloadable release.
type VersionInfo struct {
	Version  string    // release tag, e.g. "v1.5.0"
	Date     time.Time // publication date
	URL      string    // platform archive download URL
	Checksum string    // sha256 of the platform archive, if published
}

// Checker queries the release endpoint for version information.
type Checker interface {
	// CheckLatest fetches the latest release metadata.
	CheckLatest(ctx context.Context) (*VersionInfo, error)

	// IsUpdateAvailable compares the current version against the latest
	// release and returns its info when newer.
	IsUpdateAvailable(current string) (bool, *VersionInfo, error)
}
