package docker

import (
	"context"
	"regexp"
	"strings"
)

// psFormat is the tab-separated template parsed by parseContainers.
const psFormat = "{{.ID}}\t{{.Image}}\t{{.RunningFor}}\t{{.Status}}\t{{.Mounts}}"

// anonymousVolumePattern matches the 64-hex names Docker gives anonymous
// volumes; those are noise in a "what is mounted where" prompt.
var anonymousVolumePattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// Container is one row of `docker ps` output.
type Container struct {
	// ID is the full container identifier.
	ID string
	// Image is the reference the container was started from.
	Image string
	// RunningFor is the humanized age, lowercased (e.g. "2 hours ago").
	RunningFor string
	// Status is the humanized state, lowercased (e.g. "up 2 hours").
	Status string
	// Mounts lists named and host mounts, anonymous volumes filtered out.
	Mounts []string
}

// Containers lists containers, optionally restricted to running ones.
func (c *Client) Containers(ctx context.Context, onlyRunning bool) ([]Container, error) {
	args := []string{"ps", "--all"}
	if onlyRunning {
		args = append(args, "--filter", "status=running")
	}

	args = append(args, "--format", psFormat, "--no-trunc")

	out, err := c.output(ctx, args...)
	if err != nil {
		return nil, err
	}

	return parseContainers(out), nil
}

// parseContainers parses tab-separated ps output lines into Containers.
// Short or malformed lines are skipped.
func parseContainers(out string) []Container {
	var containers []Container

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			continue
		}

		container := Container{
			ID:         fields[0],
			Image:      fields[1],
			RunningFor: strings.ToLower(fields[2]),
			Status:     strings.ToLower(fields[3]),
		}

		if len(fields) > 4 && fields[4] != "" {
			for _, mount := range strings.Split(fields[4], ",") {
				if mount == "" || anonymousVolumePattern.MatchString(mount) {
					continue
				}

				container.Mounts = append(container.Mounts, mount)
			}
		}

		containers = append(containers, container)
	}

	return containers
}

// ImageName returns the repository part of the container's image reference,
// without any tag or digest.
func (c Container) ImageName() string {
	name := c.Image
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}

	// A colon after the last slash separates the tag, not a registry port.
	if colon := strings.LastIndexByte(name, ':'); colon > strings.LastIndexByte(name, '/') {
		name = name[:colon]
	}

	return name
}
