// Package osis maps resolved references onto OSIS book codes and canonref
// BibleRefs so they can be handed to tools that speak the OSIS vocabulary.
package osis

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/canonref/bibleref"
	"github.com/julianstephens/canonref/util"

	"github.com/bibliaolvaso/reference/pkg/reference"
)

var (
	ErrUnknownIndex       = errors.New("no OSIS code for book index")
	ErrUnknownTranslation = errors.New("unknown translation")
)

// Protestant canon order, index 1 is Gen.
var codes = []string{
	"Gen", "Exod", "Lev", "Num", "Deut", "Josh", "Judg", "Ruth", "1Sam", "2Sam",
	"1Kgs", "2Kgs", "1Chr", "2Chr", "Ezra", "Neh", "Esth", "Job", "Ps", "Prov",
	"Eccl", "Song", "Isa", "Jer", "Lam", "Ezek", "Dan", "Hos", "Joel", "Amos",
	"Obad", "Jonah", "Mic", "Nah", "Hab", "Zeph", "Hag", "Zech", "Mal",
	"Matt", "Mark", "Luke", "John", "Acts", "Rom", "1Cor", "2Cor", "Gal", "Eph",
	"Phil", "Col", "1Thess", "2Thess", "1Tim", "2Tim", "Titus", "Phlm", "Heb", "Jas",
	"1Pet", "2Pet", "1John", "2John", "3John", "Jude", "Rev",
}

// Code returns the OSIS book code for a canonical index.
func Code(index int) (string, bool) {
	if index < 1 || index > len(codes) {
		return "", false
	}
	return codes[index-1], true
}

func testament(t reference.Testament) string {
	if t == reference.NewTestament {
		return "NT"
	}
	return "OT"
}

// Table builds a canonref book table from one translation of the catalog.
// Titles become names and slugs become aliases.
func Table(cat *reference.Catalog, bible string) (*bibleref.Table, error) {
	if _, ok := cat.Translation(bible); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTranslation, bible)
	}

	var books []bibleref.Book
	for _, b := range cat.Books(bible) {
		code, ok := Code(b.Index)
		if !ok {
			return nil, fmt.Errorf("%w: %s has index %d", ErrUnknownIndex, b.ID, b.Index)
		}
		books = append(books, bibleref.Book{
			OSIS:      code,
			Name:      b.Title,
			Aliases:   append([]string(nil), b.Slugs...),
			Testament: testament(b.Testament),
			Order:     b.Index,
			Chapters:  b.Chapters,
		})
	}

	table, err := bibleref.NewTable(books)
	if err != nil {
		return nil, fmt.Errorf("failed to create bibleref table for %s: %w", bible, err)
	}
	return table, nil
}

// BibleRefs converts a reference into one canonref BibleRef per verse range
// and validates each against tbl, the table of the reference's translation.
// A chapter reference gives a single BibleRef without a verse range.
func BibleRefs(tbl *bibleref.Table, ref *reference.Reference) ([]*bibleref.BibleRef, error) {
	code, ok := Code(ref.Book().Index)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIndex, ref.Book().Index)
	}

	var out []*bibleref.BibleRef
	if ref.Verses() == "" {
		out = []*bibleref.BibleRef{{OSIS: code, Chapter: ref.Chapter()}}
	} else {
		ranges, err := ParseVerses(ref.Verses())
		if err != nil {
			return nil, err
		}
		out = make([]*bibleref.BibleRef, 0, len(ranges))
		for _, r := range ranges {
			vr := &util.VerseRange{StartVerse: r.Start}
			if r.End != r.Start {
				vr.EndVerse = util.Ptr(r.End)
			}
			out = append(out, &bibleref.BibleRef{OSIS: code, Chapter: ref.Chapter(), Verse: vr})
		}
	}

	for _, r := range out {
		if err := r.Validate(tbl); err != nil {
			return nil, fmt.Errorf("%s: %w", ref.ID(), err)
		}
	}
	return out, nil
}

// IDs returns the OSIS ids of a reference, e.g. "Ps.119.1-6" or "John.3".
// canonref's own OSIS format joins ranges with an en dash, so ids are built
// here with a hyphen.
func IDs(tbl *bibleref.Table, ref *reference.Reference) ([]string, error) {
	refs, err := BibleRefs(tbl, ref)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(refs))
	for i, r := range refs {
		id := r.OSIS + "." + strconv.Itoa(r.Chapter)
		if r.Verse != nil {
			id += "." + strconv.Itoa(r.Verse.StartVerse)
			if r.Verse.EndVerse != nil {
				id += "-" + strconv.Itoa(*r.Verse.EndVerse)
			}
		}
		ids[i] = id
	}
	return ids, nil
}
