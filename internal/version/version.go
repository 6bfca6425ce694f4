// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the version with the short commit, e.g. "dev (a1b2c3d)".
func String() string {
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return Version + " (" + c + ")"
}
