// Package build exposes build-time metadata injected via ldflags.
package build

var (
	// Version is the release version, e.g. "v0.3.1". Defaults to "dev".
	Version = "dev"
	// Commit is the short git SHA the binary was built from.
	Commit = "unknown"
)

// String returns a human-readable version line.
func String() string {
	return Version + " (" + Commit + ")"
}
