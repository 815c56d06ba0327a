// Package update keeps both the container image and the tool itself current.
//
// Image updates compare the local repo digest with the registry's and pull
// only on mismatch. Self-upgrades fetch a YAML release manifest, download
// the platform binary, verify its SHA-512 checksum, and atomically replace
// the running executable. A marker file prevents concurrent upgrades.
package update
