// Package login opens interactive shells in running containers, either a
// named one or by prompting over every running container in turn.
package login
