package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/turboterm/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/turboterm/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/turboterm/internal/version.Date={{.Date}}
)

// String returns the multi-line report printed by the version command
func String() string {
	return fmt.Sprintf("turboterm version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
