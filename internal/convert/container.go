// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/manual-convert/internal/container"
)

// filterMount is where the Lua filter directory appears inside the container.
const filterMount = "/filters"

// ContainerConverter runs pandoc inside a container image. The HTML is piped
// on stdin and the Lua filter directory is mounted read-only.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
	filter  string
}

// NewContainerConverter creates a converter that uses the given container
// runtime to run image. It verifies that the image exists locally before
// returning.
func NewContainerConverter(rt container.Runtime, image, luaFilter string) (*ContainerConverter, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	if luaFilter != "" {
		abs, err := filepath.Abs(luaFilter)
		if err != nil {
			return nil, fmt.Errorf("resolving lua filter %s: %w", luaFilter, err)
		}
		luaFilter = abs
	}
	return &ContainerConverter{runtime: rt, image: image, filter: luaFilter}, nil
}

// Convert pipes the HTML at htmlPath through pandoc in the container and
// returns the resulting Markdown.
func (c *ContainerConverter) Convert(ctx context.Context, htmlPath string) (string, error) {
	f, err := os.Open(htmlPath)
	if err != nil {
		return "", fmt.Errorf("opening HTML %s: %w", htmlPath, err)
	}
	defer f.Close()

	args := DefaultPandocArgs()
	var mounts []container.Mount
	if c.filter != "" {
		mounts = append(mounts, container.Mount{Source: filepath.Dir(c.filter), Target: filterMount, ReadOnly: true})
		args = args.WithLuaFilter(filterMount + "/" + filepath.Base(c.filter))
	}

	var out, errOut bytes.Buffer
	err = c.runtime.Run(ctx, container.RunSpec{
		Image:  c.image,
		Mounts: mounts,
		Args:   args.Args(),
		Stdin:  f,
		Stdout: &out,
		Stderr: &errOut,
	})
	if err != nil {
		return "", &InvocationError{Backend: c.runtime.Name(), Source: htmlPath, Stderr: errOut.String(), Err: err}
	}
	return out.String(), nil
}
