// Package stop stops every container started from the configured image.
package stop
