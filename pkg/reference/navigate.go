package reference

// PreviousChapter returns the chapter before ref, stepping back into the last
// chapter of the preceding book when ref is at a book's first chapter. Verses
// are dropped.
func (c *Catalog) PreviousChapter(ref *Reference) (*Reference, bool) {
	if ref == nil {
		return nil, false
	}
	if ref.chapter > 1 {
		return NewReference(&ref.book, ref.chapter-1, "")
	}
	book, ok := c.Book(ref.book.Bible, ref.book.Index-1)
	if !ok {
		return nil, false
	}
	return NewReference(book, book.Chapters, "")
}

// NextChapter returns the chapter after ref, moving on to the first chapter
// of the following book at the end of a book. Verses are dropped.
func (c *Catalog) NextChapter(ref *Reference) (*Reference, bool) {
	if ref == nil {
		return nil, false
	}
	if ref.chapter < ref.book.Chapters {
		return NewReference(&ref.book, ref.chapter+1, "")
	}
	book, ok := c.Book(ref.book.Bible, ref.book.Index+1)
	if !ok {
		return nil, false
	}
	return NewReference(book, 1, "")
}
