// Package config loads and validates cli50 settings.
//
// Settings live in an optional YAML file (~/.cli50.yaml by default) and
// cover the image to run, published ports, the release manifest URL, and
// timeouts. A missing default file is not an error: the tool runs with
// built-in defaults so that a bare `cli50` always works.
package config
