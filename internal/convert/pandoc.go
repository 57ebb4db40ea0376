// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"os/exec"
)

const defaultPandoc = "pandoc"

// PandocArgs assembles a pandoc command line.
type PandocArgs struct {
	From      string
	To        string
	Wrap      string
	LuaFilter string
	Opts      []string
}

// DefaultPandocArgs converts HTML to GitHub-flavored Markdown without
// re-wrapping lines.
func DefaultPandocArgs() PandocArgs {
	return PandocArgs{From: "html", To: "gfm", Wrap: "none"}
}

// WithLuaFilter returns a copy of a that applies the Lua filter at path.
func (a PandocArgs) WithLuaFilter(path string) PandocArgs {
	a.LuaFilter = path
	return a
}

// WithOpt returns a copy of a with an extra raw option appended.
func (a PandocArgs) WithOpt(opt string) PandocArgs {
	a.Opts = append(append([]string(nil), a.Opts...), opt)
	return a
}

// Args returns the argument list. Inputs follow the options; with no inputs
// pandoc reads standard input.
func (a PandocArgs) Args(inputs ...string) []string {
	var args []string
	if a.From != "" {
		args = append(args, "--from="+a.From)
	}
	if a.To != "" {
		args = append(args, "--to="+a.To)
	}
	if a.Wrap != "" {
		args = append(args, "--wrap="+a.Wrap)
	}
	if a.LuaFilter != "" {
		args = append(args, "--lua-filter="+a.LuaFilter)
	}
	args = append(args, a.Opts...)
	return append(args, inputs...)
}

// commandRunner abstracts command execution to enable testing without real
// subprocesses.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// execRunner implements commandRunner using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// PandocConverter converts HTML by invoking a local pandoc binary.
type PandocConverter struct {
	bin    string
	args   PandocArgs
	runner commandRunner
}

// NewPandocConverter creates a converter running bin (default "pandoc") with
// the given Lua filter. An empty filter runs pandoc without one.
func NewPandocConverter(bin, luaFilter string) *PandocConverter {
	if bin == "" {
		bin = defaultPandoc
	}
	return &PandocConverter{
		bin:    bin,
		args:   DefaultPandocArgs().WithLuaFilter(luaFilter),
		runner: execRunner{},
	}
}

// Convert runs pandoc on htmlPath and returns its standard output.
func (p *PandocConverter) Convert(ctx context.Context, htmlPath string) (string, error) {
	stdout, stderr, err := p.runner.Run(ctx, p.bin, p.args.Args(htmlPath)...)
	if err != nil {
		return "", &InvocationError{Backend: p.bin, Source: htmlPath, Stderr: stderr, Err: err}
	}
	return stdout, nil
}
