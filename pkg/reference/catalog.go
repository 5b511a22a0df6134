// Package reference resolves free-text scripture citations into canonical,
// addressable references within a translation and navigates between chapters.
//
// Every operation reports failure the same way: a nil result and false. A
// citation that cannot be resolved is routine, not exceptional.
package reference

// Testament tags a book as part of the old or new testament.
type Testament string

const (
	OldTestament Testament = "old"
	NewTestament Testament = "new"
)

// Translation describes one rendering of the scripture corpus (a "bible").
type Translation struct {
	ID               string
	Lang             string
	Name             string
	ShortName        string
	Copyright        string
	FirstPublishedIn int
}

// Book is a single book as it appears in one translation.
type Book struct {
	ID        string
	Bible     string
	Index     int
	Title     string
	Abbr      string
	Chapters  int
	Testament Testament
	// Slugs are lowercase, accent-folded aliases. Slugs[0] is canonical.
	Slugs []string
}

// Slug returns the canonical slug of the book.
func (b Book) Slug() string {
	if len(b.Slugs) == 0 {
		return ""
	}
	return b.Slugs[0]
}

// Catalog is the read-only table of translations and books every lookup runs
// against. It is never mutated after NewCatalog returns, so a single value can
// be shared by any number of goroutines.
type Catalog struct {
	translations []*Translation
	byID         map[string]*Translation
	books        map[string][]*Book // translation id -> books ordered by index
	variants     [][]*Book          // index-1 -> that book in every translation
}

// NewCatalog builds a catalog from translation and book records. Books are
// placed by their Index; the records are trusted to be consistent (see
// catalog.Verify for the checks).
func NewCatalog(translations []Translation, books []Book) *Catalog {
	c := &Catalog{
		byID:  make(map[string]*Translation, len(translations)),
		books: make(map[string][]*Book, len(translations)),
	}

	for i := range translations {
		t := translations[i]
		c.translations = append(c.translations, &t)
		c.byID[t.ID] = &t
	}

	for i := range books {
		b := books[i]
		b.Slugs = append([]string(nil), b.Slugs...)
		if b.Index < 1 {
			continue
		}

		list := c.books[b.Bible]
		for len(list) < b.Index {
			list = append(list, nil)
		}
		list[b.Index-1] = &b
		c.books[b.Bible] = list

		for len(c.variants) < b.Index {
			c.variants = append(c.variants, nil)
		}
		c.variants[b.Index-1] = append(c.variants[b.Index-1], &b)
	}

	return c
}

// Translation returns the translation with the given id.
func (c *Catalog) Translation(id string) (*Translation, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Translations returns every translation in catalog order.
func (c *Catalog) Translations() []*Translation {
	out := make([]*Translation, len(c.translations))
	copy(out, c.translations)
	return out
}

// Book returns the book at the 1-based canonical index within a translation.
func (c *Catalog) Book(bible string, index int) (*Book, bool) {
	list := c.books[bible]
	if index < 1 || index > len(list) || list[index-1] == nil {
		return nil, false
	}
	return list[index-1], true
}

// Books returns the books of a translation ordered by canonical index.
func (c *Catalog) Books(bible string) []*Book {
	list := c.books[bible]
	out := make([]*Book, 0, len(list))
	for _, b := range list {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// variantsOf returns the book at index across all translations.
func (c *Catalog) variantsOf(index int) []*Book {
	if index < 1 || index > len(c.variants) {
		return nil
	}
	return c.variants[index-1]
}
