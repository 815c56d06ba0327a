// Package docker drives the Docker CLI.
//
// Everything goes through the docker binary rather than an engine SDK:
// the interactive surfaces (attach, exec) must inherit the user's terminal,
// and shelling out keeps the behavior identical to what a user typing the
// same commands would see. Non-interactive calls capture stderr into
// returned errors; the liveness probe distinguishes a stopped daemon from
// an unresponsive one with help from the process table.
package docker
