// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a container runtime and runs one-shot containers
// with piped standard streams. It backs the containerized pandoc converter.
package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Mount binds a host path into the container.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

func (m Mount) flag() string {
	v := m.Source + ":" + m.Target
	if m.ReadOnly {
		v += ":ro"
	}
	return v
}

// RunSpec describes a single container invocation.
type RunSpec struct {
	Image  string
	Mounts []Mount
	// Args are passed to the image entrypoint.
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runtime is a container engine able to run one-shot containers.
type Runtime interface {
	// Name is the runtime binary, "docker" or "podman".
	Name() string
	// Available reports whether the binary is on PATH and answers "info".
	Available() bool
	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error
	// Run starts the container described by spec and waits for it to exit.
	Run(ctx context.Context, spec RunSpec) error
}

// executor runs the runtime binary; tests substitute a fake.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor runs real processes.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for one container binary. Docker and Podman
// accept the same run flags and differ only in how an image is probed.
type runtime struct {
	bin        string
	imageProbe []string
	exec       executor
}

// candidates lists supported runtimes in order of preference.
var candidates = []struct {
	bin        string
	imageProbe []string
}{
	{bin: binDocker, imageProbe: []string{"image", "inspect"}},
	{bin: binPodman, imageProbe: []string{"image", "exists"}},
}

func newRuntime(bin string, exec executor) *runtime {
	for _, c := range candidates {
		if c.bin == bin {
			return &runtime{bin: c.bin, imageProbe: c.imageProbe, exec: exec}
		}
	}
	return &runtime{bin: bin, imageProbe: []string{"image", "inspect"}, exec: exec}
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := append(append([]string(nil), r.imageProbe...), image)
	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, spec RunSpec) error {
	if err := r.exec.RunPiped(ctx, r.bin, runArgs(spec), spec.Stdin, spec.Stdout, spec.Stderr); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, spec.Image, err)
	}
	return nil
}

// runArgs builds "run --rm -i [-v src:dst[:ro]]... image args...".
func runArgs(spec RunSpec) []string {
	args := []string{"run", "--rm", "-i"}
	for _, m := range spec.Mounts {
		args = append(args, "-v", m.flag())
	}
	args = append(args, spec.Image)
	return append(args, spec.Args...)
}

// DetectRuntime returns the first operational runtime, docker before podman.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(osExecutor{})
}

func detectRuntime(exec executor) (Runtime, error) {
	tried := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if rt := newRuntime(c.bin, exec); rt.Available() {
			return rt, nil
		}
		tried = append(tried, c.bin)
	}
	return nil, fmt.Errorf("no container runtime available: tried %s", strings.Join(tried, ", "))
}
