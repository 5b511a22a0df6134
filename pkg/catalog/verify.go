package catalog

import (
	"fmt"
	"sort"

	"github.com/bibliaolvaso/reference/pkg/reference"
)

// Problem is one inconsistency found while checking a catalog.
type Problem struct {
	Bible    string `json:"bible,omitempty"`
	Book     string `json:"book,omitempty"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
}

func (p Problem) String() string {
	where := p.Bible
	if p.Book != "" {
		where = p.Book
	}
	if where == "" {
		return fmt.Sprintf("[%s] %s", p.Type, p.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", p.Type, where, p.Message)
}

// Verify checks the structural invariants resolution relies on. The catalog
// itself trusts its input, so a document should pass Verify before it is
// shipped.
func Verify(doc *Document) []Problem {
	var problems []Problem

	if len(doc.Bibles) == 0 {
		return append(problems, Problem{Type: "translations", Message: "catalog has no translations"})
	}

	known := make(map[string]bool, len(doc.Bibles))
	for _, t := range doc.Bibles {
		if t.ID == "" {
			problems = append(problems, Problem{Type: "translations", Message: "translation without id"})
			continue
		}
		if known[t.ID] {
			problems = append(problems, Problem{Bible: t.ID, Type: "translations", Message: "duplicate translation id"})
		}
		known[t.ID] = true
	}

	indices := make(map[string][]int, len(doc.Bibles))
	for _, b := range doc.Books {
		if !known[b.Bible] {
			problems = append(problems, Problem{
				Bible:   b.Bible,
				Book:    b.ID,
				Type:    "translation",
				Message: "book names an unknown translation",
			})
			continue
		}
		indices[b.Bible] = append(indices[b.Bible], b.Index)
		problems = append(problems, verifyBook(b)...)
	}

	count := -1
	for _, t := range doc.Bibles {
		idx := indices[t.ID]
		sort.Ints(idx)
		for i, n := range idx {
			if n != i+1 {
				problems = append(problems, Problem{
					Bible:    t.ID,
					Type:     "index",
					Message:  "book indices are not contiguous from 1",
					Expected: i + 1,
					Actual:   n,
				})
				break
			}
		}
		if count == -1 {
			count = len(idx)
		} else if len(idx) != count {
			problems = append(problems, Problem{
				Bible:    t.ID,
				Type:     "count",
				Message:  "translations differ in number of books",
				Expected: count,
				Actual:   len(idx),
			})
		}
	}

	return problems
}

func verifyBook(b BookData) []Problem {
	var problems []Problem
	add := func(typ, msg string, expected, actual any) {
		problems = append(problems, Problem{
			Bible:    b.Bible,
			Book:     b.ID,
			Type:     typ,
			Message:  msg,
			Expected: expected,
			Actual:   actual,
		})
	}

	if want := fmt.Sprintf("%s_%02d", b.Bible, b.Index); b.ID != want {
		add("id", "book id does not match translation and index", want, b.ID)
	}
	if b.Chapters < 1 {
		add("chapters", "book has no chapters", ">0", b.Chapters)
	}
	if b.Title == "" {
		add("title", "empty title", nil, nil)
	}
	if b.Abbr == "" {
		add("abbr", "empty abbreviation", nil, nil)
	}
	switch reference.Testament(b.Testament) {
	case reference.OldTestament, reference.NewTestament:
	default:
		add("testament", "unknown testament", "old|new", b.Testament)
	}
	if len(b.Slugs) == 0 {
		add("slugs", "book has no slugs", nil, nil)
	}
	for _, s := range b.Slugs {
		if s == "" {
			add("slugs", "empty slug", nil, nil)
			continue
		}
		if n := reference.Normalize(s); n != s {
			add("slugs", "slug is not in normalized form", n, s)
		}
	}

	return problems
}

// VerifyRoundTrip checks that every book's own abbreviation resolves back to
// the same book: resolving "<abbr> 1" must give the abbreviation "<abbr> 1".
func VerifyRoundTrip(cat *reference.Catalog) []Problem {
	var problems []Problem
	for _, t := range cat.Translations() {
		for _, b := range cat.Books(t.ID) {
			want := b.Abbr + " 1"
			ref, ok := cat.Resolve(t.ID, want)
			switch {
			case !ok:
				problems = append(problems, Problem{
					Bible:    t.ID,
					Book:     b.ID,
					Type:     "roundtrip",
					Message:  "abbreviation does not resolve",
					Expected: want,
				})
			case ref.Abbr() != want:
				problems = append(problems, Problem{
					Bible:    t.ID,
					Book:     b.ID,
					Type:     "roundtrip",
					Message:  "abbreviation resolves to another book",
					Expected: want,
					Actual:   ref.Abbr(),
				})
			}
		}
	}
	return problems
}
