// Package version exposes build metadata for cli50.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds. Line renders
// the `cli50 <version>` output that release tooling parses.
package version
