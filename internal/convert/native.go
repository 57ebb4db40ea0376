// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// NativeConverter converts HTML in-process with html-to-markdown. It needs no
// external tools but does not apply pandoc Lua filters.
type NativeConverter struct {
	conv *converter.Converter
}

// NewNativeConverter creates a converter with the base, CommonMark and
// table plugins.
func NewNativeConverter() *NativeConverter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &NativeConverter{conv: conv}
}

// Convert reads the HTML at htmlPath and returns its Markdown rendering.
func (n *NativeConverter) Convert(ctx context.Context, htmlPath string) (string, error) {
	f, err := os.Open(htmlPath)
	if err != nil {
		return "", fmt.Errorf("opening HTML %s: %w", htmlPath, err)
	}
	defer f.Close()

	out, err := n.conv.ConvertReader(f, converter.WithContext(ctx))
	if err != nil {
		return "", &InvocationError{Backend: "native", Source: htmlPath, Err: err}
	}
	return string(out), nil
}
