// Package version exposes build metadata for the alarm binaries.
//
// Version, Commit and BuildTime may be injected via ldflags; values left
// unset are filled from runtime/debug build info on first use.
package version
