package reference

import (
	"strconv"
	"strings"
)

// Resolve turns free text into a reference within the given translation.
func (c *Catalog) Resolve(bible, text string) (*Reference, bool) {
	cit, ok := ParseCitation(text)
	if !ok {
		return nil, false
	}
	book, ok := c.ResolveBook(bible, cit.Book)
	if !ok {
		return nil, false
	}
	return NewReference(book, cit.Chapter, cit.Verses)
}

// ResolveBook maps a raw book token to a book of the given translation.
//
// An all-digit token is a canonical index. Anything else is normalized and
// matched as a prefix of the translation's slugs. When several books match,
// the one whose canonical slug in any translation equals the token wins; if
// that still leaves zero or several books, there is no match.
func (c *Catalog) ResolveBook(bible, token string) (*Book, bool) {
	if isDigits(token) {
		index, err := strconv.Atoi(token)
		if err != nil {
			return nil, false
		}
		return c.Book(bible, index)
	}

	slug := Normalize(token)

	var candidates []*Book
	for _, b := range c.books[bible] {
		if b != nil && hasSlugPrefix(b, slug) {
			candidates = append(candidates, b)
		}
	}

	if len(candidates) > 1 {
		narrowed := candidates[:0:0]
		for _, b := range candidates {
			if c.isCanonicalSlug(b.Index, slug) {
				narrowed = append(narrowed, b)
			}
		}
		candidates = narrowed
	}

	if len(candidates) != 1 {
		return nil, false
	}
	return candidates[0], true
}

func hasSlugPrefix(b *Book, prefix string) bool {
	for _, s := range b.Slugs {
		if strings.HasPrefix(Normalize(s), prefix) {
			return true
		}
	}
	return false
}

// isCanonicalSlug reports whether slug is the canonical slug of the book at
// index in any translation.
func (c *Catalog) isCanonicalSlug(index int, slug string) bool {
	for _, v := range c.variantsOf(index) {
		if v.Slug() == slug {
			return true
		}
	}
	return false
}
