// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/manual-convert/internal/container"
	"github.com/pdiddy/manual-convert/pkg/types"
)

// detectRuntime is swapped in tests.
var detectRuntime = container.DetectRuntime

// NewConverter builds the converter selected by cfg.Backend. A non-zero
// cfg.Timeout bounds every call.
func NewConverter(cfg types.ConverterConfig) (Converter, error) {
	var c Converter
	switch cfg.Backend {
	case types.BackendPandoc, "":
		c = NewPandocConverter(cfg.PandocPath, cfg.LuaFilter)
	case types.BackendContainer:
		rt, err := detectRuntime()
		if err != nil {
			return nil, err
		}
		cc, err := NewContainerConverter(rt, cfg.Image, cfg.LuaFilter)
		if err != nil {
			return nil, err
		}
		c = cc
	case types.BackendNative:
		c = NewNativeConverter()
	default:
		return nil, fmt.Errorf("%w: %q (use pandoc, container, or native)", ErrUnknownBackend, cfg.Backend)
	}

	if cfg.Timeout > 0 {
		c = timeoutConverter{next: c, timeout: cfg.Timeout}
	}
	return c, nil
}

// timeoutConverter bounds each conversion of next.
type timeoutConverter struct {
	next    Converter
	timeout time.Duration
}

func (t timeoutConverter) Convert(ctx context.Context, htmlPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Convert(ctx, htmlPath)
}
