package catalog

import (
	"github.com/bibliaolvaso/reference/pkg/reference"
)

// SchemaVersion is the document schema written by this package.
const SchemaVersion = 1

// TranslationData is the stored form of a translation.
type TranslationData struct {
	ID               string `json:"id" yaml:"id"`
	Lang             string `json:"lang" yaml:"lang"`
	Name             string `json:"name" yaml:"name"`
	ShortName        string `json:"short_name,omitempty" yaml:"short_name,omitempty"`
	Copyright        string `json:"copyright" yaml:"copyright"`
	FirstPublishedIn int    `json:"first_published_in" yaml:"first_published_in"`
}

// BookData is the stored form of a book in one translation.
type BookData struct {
	ID        string   `json:"id" yaml:"id"`
	Bible     string   `json:"bible" yaml:"bible"`
	Index     int      `json:"index" yaml:"index"`
	Title     string   `json:"title" yaml:"title"`
	Abbr      string   `json:"abbr" yaml:"abbr"`
	Chapters  int      `json:"chapters" yaml:"chapters"`
	Testament string   `json:"testament" yaml:"testament"`
	Slugs     []string `json:"slugs" yaml:"slugs"`
}

// Document is the on-disk shape of a catalog, shared by every format.
type Document struct {
	Schema int               `json:"schema" yaml:"schema"`
	Bibles []TranslationData `json:"bibles" yaml:"bibles"`
	Books  []BookData        `json:"books" yaml:"books"`
}

// Catalog builds the immutable catalog described by the document.
func (d *Document) Catalog() *reference.Catalog {
	translations := make([]reference.Translation, len(d.Bibles))
	for i, t := range d.Bibles {
		translations[i] = reference.Translation{
			ID:               t.ID,
			Lang:             t.Lang,
			Name:             t.Name,
			ShortName:        t.ShortName,
			Copyright:        t.Copyright,
			FirstPublishedIn: t.FirstPublishedIn,
		}
	}

	books := make([]reference.Book, len(d.Books))
	for i, b := range d.Books {
		books[i] = reference.Book{
			ID:        b.ID,
			Bible:     b.Bible,
			Index:     b.Index,
			Title:     b.Title,
			Abbr:      b.Abbr,
			Chapters:  b.Chapters,
			Testament: reference.Testament(b.Testament),
			Slugs:     b.Slugs,
		}
	}

	return reference.NewCatalog(translations, books)
}

// FromCatalog converts a catalog back into its stored form. Books are grouped
// by translation in catalog order.
func FromCatalog(cat *reference.Catalog) *Document {
	doc := &Document{Schema: SchemaVersion}
	for _, t := range cat.Translations() {
		doc.Bibles = append(doc.Bibles, TranslationData{
			ID:               t.ID,
			Lang:             t.Lang,
			Name:             t.Name,
			ShortName:        t.ShortName,
			Copyright:        t.Copyright,
			FirstPublishedIn: t.FirstPublishedIn,
		})
		for _, b := range cat.Books(t.ID) {
			doc.Books = append(doc.Books, BookData{
				ID:        b.ID,
				Bible:     b.Bible,
				Index:     b.Index,
				Title:     b.Title,
				Abbr:      b.Abbr,
				Chapters:  b.Chapters,
				Testament: string(b.Testament),
				Slugs:     append([]string(nil), b.Slugs...),
			})
		}
	}
	return doc
}
