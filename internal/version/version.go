// Package version holds build metadata injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent is the User-Agent header sent to the engine.
func UserAgent() string {
	return fmt.Sprintf("solr-go/%s (%s)", Version, Commit)
}
