package reference

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Reference is a resolved address of a chapter, optionally narrowed by a verse
// specifier, within one translation. It is immutable; the derived display
// fields are computed once at construction.
type Reference struct {
	book    Book
	chapter int
	verses  string

	id        string
	chapterID string
	abbr      string
	path      string
}

// NewReference builds a reference for a chapter of book. The verse specifier
// is opaque and appended verbatim to the derived fields when non-empty.
func NewReference(book *Book, chapter int, verses string) (*Reference, bool) {
	if book == nil || chapter < 1 || chapter > book.Chapters {
		return nil, false
	}

	r := &Reference{
		book:    *book,
		chapter: chapter,
		verses:  verses,
	}
	r.chapterID = fmt.Sprintf("%s_%02d%03d", book.Bible, book.Index, chapter)
	r.id = r.chapterID
	r.abbr = book.Abbr + " " + strconv.Itoa(chapter)
	r.path = "/" + book.Bible + "/" + book.Slug() + "/" + strconv.Itoa(chapter)

	if verses != "" {
		r.id += "_" + verses
		r.abbr += ":" + verses
		r.path += "/" + verses
	}

	return r, true
}

// ID returns the stable identifier, e.g. "karoli_19119_1-6".
func (r *Reference) ID() string { return r.id }

// ChapterID returns the identifier of the chapter, without verses.
func (r *Reference) ChapterID() string { return r.chapterID }

// Abbr returns the human-readable form, e.g. "Zsolt 119:1-6".
func (r *Reference) Abbr() string { return r.abbr }

// Path returns the hierarchical path, e.g. "/karoli/zsolt/119/1-6".
func (r *Reference) Path() string { return r.path }

// Book returns a copy of the referenced book.
func (r *Reference) Book() Book {
	b := r.book
	b.Slugs = append([]string(nil), r.book.Slugs...)
	return b
}

// Chapter returns the 1-based chapter number.
func (r *Reference) Chapter() int { return r.chapter }

// Verses returns the verse specifier as written, or "" for a whole chapter.
func (r *Reference) Verses() string { return r.verses }

// Bible returns the id of the translation the reference belongs to.
func (r *Reference) Bible() string { return r.book.Bible }

// String returns the same text as Abbr.
func (r *Reference) String() string { return r.abbr }

type referenceJSON struct {
	ID        string   `json:"id"`
	ChapterID string   `json:"chapter_id"`
	Abbr      string   `json:"abbr"`
	Path      string   `json:"path"`
	Bible     string   `json:"bible"`
	Book      bookJSON `json:"book"`
	Chapter   int      `json:"chapter"`
	Verses    string   `json:"verses,omitempty"`
}

type bookJSON struct {
	Index int    `json:"index"`
	Abbr  string `json:"abbr"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// MarshalJSON encodes the reference with its derived fields.
func (r *Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(referenceJSON{
		ID:        r.id,
		ChapterID: r.chapterID,
		Abbr:      r.abbr,
		Path:      r.path,
		Bible:     r.book.Bible,
		Book: bookJSON{
			Index: r.book.Index,
			Abbr:  r.book.Abbr,
			Title: r.book.Title,
			Slug:  r.book.Slug(),
		},
		Chapter: r.chapter,
		Verses:  r.verses,
	})
}
