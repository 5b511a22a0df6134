// Package linkify rewrites scripture citations in HTML documents into links
// to their canonical paths.
package linkify

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/bibliaolvaso/reference/pkg/reference"
)

const (
	// RefClass marks an <a> element whose text is a citation.
	RefClass = "ref"
	// RefAttr holds a citation on any element, overriding its text.
	RefAttr = "data-ref"
	// IDAttr receives the id of the resolved reference.
	IDAttr = "data-ref-id"
)

// Linker resolves citations found in HTML against one translation.
type Linker struct {
	Catalog *reference.Catalog
	Bible   string
	// BaseURL is prefixed to reference paths in href attributes.
	BaseURL string
}

// Rewrite copies an HTML document from r to w, annotating every citation
// target that resolves. Targets that do not resolve are left untouched and
// reported in the result.
func (l *Linker) Rewrite(r io.Reader, w io.Writer, name string) (*FileResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &FileResult{File: name}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isTarget(n) {
			l.annotate(n, result)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if err := html.Render(w, doc); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return result, nil
}

func (l *Linker) annotate(n *html.Node, result *FileResult) {
	text := citationText(n)
	ref, ok := l.Catalog.Resolve(l.Bible, text)
	if !ok {
		result.Problems = append(result.Problems, Problem{
			File:    result.File,
			Type:    "unresolved",
			Message: "citation does not resolve",
			Actual:  text,
		})
		return
	}

	link := Link{Text: text, ID: ref.ID()}
	if n.Data == "a" {
		link.Href = l.BaseURL + ref.Path()
		setAttr(n, "href", link.Href)
	}
	setAttr(n, IDAttr, ref.ID())
	if _, ok := getAttr(n, "title"); !ok {
		setAttr(n, "title", ref.Abbr())
	}
	result.Links = append(result.Links, link)
}

func isTarget(n *html.Node) bool {
	if _, ok := getAttr(n, RefAttr); ok {
		return true
	}
	if n.Data != "a" {
		return false
	}
	class, _ := getAttr(n, "class")
	for _, c := range strings.Fields(class) {
		if c == RefClass {
			return true
		}
	}
	return false
}

func citationText(n *html.Node) string {
	if v, ok := getAttr(n, RefAttr); ok {
		return strings.TrimSpace(v)
	}
	return strings.Join(strings.Fields(getTextContent(n)), " ")
}

// getTextContent recursively extracts all text content from a node
func getTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(getTextContent(c))
	}
	return text.String()
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
