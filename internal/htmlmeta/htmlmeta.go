// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package htmlmeta reads the <title> and <meta> tags of an HTML page.
package htmlmeta

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Meta holds the document-level metadata of an HTML page.
type Meta struct {
	Title string
	// Fields maps <meta name|property> to its content attribute.
	Fields map[string]string
}

// ReadFile parses the HTML file at path.
func ReadFile(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses HTML from r and extracts the title and meta tags of its head.
func Read(r io.Reader) (Meta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Meta{}, fmt.Errorf("parsing HTML: %w", err)
	}
	m := Meta{Fields: make(map[string]string)}
	if head := find(doc, "head"); head != nil {
		m.readHead(head)
	}
	return m, nil
}

func (m *Meta) readHead(head *html.Node) {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "title":
			m.Title = strings.Join(strings.Fields(textContent(c)), " ")
		case "meta":
			var name, content string
			for _, attr := range c.Attr {
				switch attr.Key {
				case "name", "property":
					name = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if name != "" {
				m.Fields[name] = content
			}
		}
	}
}

// find returns the first element named tag in depth-first order.
func find(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
