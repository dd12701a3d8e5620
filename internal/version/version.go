// Package version holds build-time metadata injected via ldflags.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// These variables are set at build time using -ldflags:
//
//	-X 'github.com/janekbaraniewski/daytrend/internal/version.Version=...'
//	-X 'github.com/janekbaraniewski/daytrend/internal/version.CommitHash=...'
//	-X 'github.com/janekbaraniewski/daytrend/internal/version.BuildDate=...'
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns a formatted version string.
func String() string {
	return Version + " (" + CommitHash + ") built " + BuildDate
}

// Release returns Version as a canonical semver tag, or "" for dev and
// other non-release builds.
func Release() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Prerelease(v) != "" {
		return ""
	}
	return semver.Canonical(v)
}
