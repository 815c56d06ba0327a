// Package registry looks up image tag digests over the Docker Hub HTTP API,
// letting the updater skip `docker pull` when the local image is current.
package registry
