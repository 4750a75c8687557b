package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns a human-friendly version string for CLI output.
// Semantic versions are normalised to the v-prefixed form.
func Summary() string {
	raw := strings.TrimSpace(Version)
	if raw == "" {
		return "dev"
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw
	}
	return "v" + v.String()
}
