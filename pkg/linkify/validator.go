package linkify

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/bibliaolvaso/reference/pkg/reference"
)

// Validator re-checks rewritten documents: every data-ref-id must name a
// reference of the catalog and every linked href must point at its path.
type Validator struct {
	catalog *reference.Catalog
	bible   string
	baseURL string
}

// NewValidator creates a new validator
func NewValidator(cat *reference.Catalog, bible, baseURL string) *Validator {
	return &Validator{catalog: cat, bible: bible, baseURL: baseURL}
}

// ValidateFile checks the links of one rendered document.
func (v *Validator) ValidateFile(filename string, content []byte) []Problem {
	var problems []Problem

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return append(problems, Problem{
			File:    filename,
			Type:    "parse",
			Message: fmt.Sprintf("failed to parse HTML: %v", err),
		})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id, ok := getAttr(n, IDAttr); ok {
				problems = append(problems, v.validateLink(filename, n, id)...)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return problems
}

func (v *Validator) validateLink(filename string, n *html.Node, id string) []Problem {
	ref, ok := v.lookup(id)
	if !ok {
		return []Problem{{
			File:    filename,
			Type:    "id",
			Message: "data-ref-id does not name a reference",
			Actual:  id,
		}}
	}

	if n.Data != "a" {
		return nil
	}
	want := v.baseURL + ref.Path()
	if href, _ := getAttr(n, "href"); href != want {
		return []Problem{{
			File:     filename,
			Type:     "href",
			Message:  fmt.Sprintf("link for %s points elsewhere", id),
			Expected: want,
			Actual:   href,
		}}
	}
	return nil
}

// lookup rebuilds a reference from an id such as "karoli_19119_1-6".
func (v *Validator) lookup(id string) (*reference.Reference, bool) {
	rest, ok := strings.CutPrefix(id, v.bible+"_")
	if !ok || len(rest) < 5 {
		return nil, false
	}

	index, err := strconv.Atoi(rest[:2])
	if err != nil {
		return nil, false
	}
	chapter, err := strconv.Atoi(rest[2:5])
	if err != nil {
		return nil, false
	}

	var verses string
	if len(rest) > 5 {
		if rest[5] != '_' || len(rest) == 6 {
			return nil, false
		}
		verses = rest[6:]
	}

	book, ok := v.catalog.Book(v.bible, index)
	if !ok {
		return nil, false
	}
	ref, ok := reference.NewReference(book, chapter, verses)
	if !ok || ref.ID() != id {
		return nil, false
	}
	return ref, true
}
