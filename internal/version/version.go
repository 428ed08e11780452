/*
Package version holds build information for quote-discovery.

Values are set via ldflags during build:

	go build -ldflags "-X .../internal/version.Version=v0.3.0 \
	  -X .../internal/version.Commit=$(git rev-parse --short HEAD) \
	  -X .../internal/version.Date=$(date -u +%Y-%m-%d)"

Without ldflags the build reports itself as "dev".
*/
package version

var (
	// Version is the release tag, e.g. v0.3.0.
	Version = "dev"
	// Commit is the short git commit hash.
	Commit = "none"
	// Date is the UTC build date (YYYY-MM-DD).
	Date = "unknown"
)

// GetVersion returns the version line shown by --version.
func GetVersion() string {
	return FormatVersion(Version, Commit, Date)
}

// FormatVersion formats build components for display.
func FormatVersion(version, commit, date string) string {
	if version == "dev" {
		return version + " (development build)"
	}
	return version + " (commit: " + commit + ", built: " + date + ")"
}

// GetVersionComponents returns the raw build components.
func GetVersionComponents() (version, commit, date string) {
	return Version, Commit, Date
}
