package reference_test

import (
	"encoding/json"
	"testing"

	"github.com/bibliaolvaso/reference/pkg/reference"
)

func mustBook(t *testing.T, cat *reference.Catalog, bible string, index int) *reference.Book {
	t.Helper()
	b, ok := cat.Book(bible, index)
	if !ok {
		t.Fatalf("book %d missing from %s", index, bible)
	}
	return b
}

func TestNewReference(t *testing.T) {
	cat := loadCatalog(t)
	ref, ok := reference.NewReference(mustBook(t, cat, "ujforditas", 20), 3, "5-6")
	if !ok {
		t.Fatal("expected reference to be built")
	}

	if ref.Bible() != "ujforditas" {
		t.Errorf("expected bible ujforditas, got %s", ref.Bible())
	}
	if ref.Book().Index != 20 {
		t.Errorf("expected book 20, got %d", ref.Book().Index)
	}
	if ref.Chapter() != 3 {
		t.Errorf("expected chapter 3, got %d", ref.Chapter())
	}
	if ref.Verses() != "5-6" {
		t.Errorf("expected verses 5-6, got %s", ref.Verses())
	}
	if ref.ID() != "ujforditas_20003_5-6" {
		t.Errorf("expected id ujforditas_20003_5-6, got %s", ref.ID())
	}
	if ref.Abbr() != "Péld 3:5-6" {
		t.Errorf("expected abbr 'Péld 3:5-6', got %s", ref.Abbr())
	}
	if ref.Path() != "/ujforditas/peld/3/5-6" {
		t.Errorf("expected path /ujforditas/peld/3/5-6, got %s", ref.Path())
	}
	if ref.String() != ref.Abbr() {
		t.Errorf("expected String to equal Abbr, got %s", ref.String())
	}
}

func TestNewReferenceRejects(t *testing.T) {
	cat := loadCatalog(t)
	deut := mustBook(t, cat, "karoli", 5)

	if _, ok := reference.NewReference(nil, 1, ""); ok {
		t.Error("expected nil book to fail")
	}
	if _, ok := reference.NewReference(deut, 0, ""); ok {
		t.Error("expected chapter 0 to fail")
	}
	if _, ok := reference.NewReference(deut, 35, ""); ok {
		t.Error("expected chapter 35 of Deuteronomy to fail")
	}
	if _, ok := reference.NewReference(deut, 34, ""); !ok {
		t.Error("expected last chapter to succeed")
	}
}

func TestBookIsCopied(t *testing.T) {
	cat := loadCatalog(t)
	ref, _ := cat.Resolve("karoli", "Jel 1")

	b := ref.Book()
	b.Slugs[0] = "changed"
	b.Abbr = "changed"

	if ref.Path() != "/karoli/jel/1" || ref.Book().Slug() != "jel" || ref.Book().Abbr != "Jel" {
		t.Errorf("reference was mutated through its book copy: %s", ref.Path())
	}
	if again, _ := cat.Resolve("karoli", "Jel 1"); again.Path() != "/karoli/jel/1" {
		t.Errorf("catalog was mutated through a book copy: %s", again.Path())
	}
}

func TestPreviousChapter(t *testing.T) {
	cat := loadCatalog(t)
	prov := mustBook(t, cat, "ujforditas", 20)

	tests := []struct {
		name    string
		book    *reference.Book
		chapter int
		verses  string
		want    string
	}{
		{"within book", prov, 3, "5-6", "ujforditas_20002"},
		{"crosses book border", prov, 1, "", "ujforditas_19150"},
		{"uneven chapter counts", mustBook(t, cat, "karoli", 40), 1, "", "karoli_39004"},
		{"uneven chapter counts", mustBook(t, cat, "ujforditas", 40), 1, "", "ujforditas_39003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, _ := reference.NewReference(tt.book, tt.chapter, tt.verses)
			prev, ok := cat.PreviousChapter(ref)
			if !ok {
				t.Fatalf("expected a previous chapter for %s", ref.ID())
			}
			if prev.ID() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, prev.ID())
			}
			if prev.Verses() != "" {
				t.Errorf("expected verses to be dropped, got %q", prev.Verses())
			}
		})
	}

	first, _ := reference.NewReference(mustBook(t, cat, "ujforditas", 1), 1, "")
	if prev, ok := cat.PreviousChapter(first); ok || prev != nil {
		t.Errorf("expected no chapter before Genesis 1, got %v", prev)
	}
	if _, ok := cat.PreviousChapter(nil); ok {
		t.Error("expected nil reference to have no previous chapter")
	}
}

func TestNextChapter(t *testing.T) {
	cat := loadCatalog(t)
	prov := mustBook(t, cat, "ujforditas", 20)

	tests := []struct {
		name    string
		book    *reference.Book
		chapter int
		verses  string
		want    string
	}{
		{"within book", prov, 3, "5-6", "ujforditas_20004"},
		{"crosses book border", prov, 31, "", "ujforditas_21001"},
		{"translation specific last chapter", mustBook(t, cat, "karoli", 29), 3, "", "karoli_30001"},
		{"translation specific last chapter", mustBook(t, cat, "ujforditas", 29), 3, "", "ujforditas_29004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, _ := reference.NewReference(tt.book, tt.chapter, tt.verses)
			next, ok := cat.NextChapter(ref)
			if !ok {
				t.Fatalf("expected a next chapter for %s", ref.ID())
			}
			if next.ID() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, next.ID())
			}
		})
	}

	last, _ := reference.NewReference(mustBook(t, cat, "ujforditas", 66), 22, "")
	if next, ok := cat.NextChapter(last); ok || next != nil {
		t.Errorf("expected no chapter after Revelation 22, got %v", next)
	}
	if _, ok := cat.NextChapter(nil); ok {
		t.Error("expected nil reference to have no next chapter")
	}
}

func TestWalkWholeTranslation(t *testing.T) {
	cat := loadCatalog(t)

	total := 0
	for _, b := range cat.Books("karoli") {
		total += b.Chapters
	}

	ref, _ := cat.Resolve("karoli", "1/1")
	steps := 1
	for {
		next, ok := cat.NextChapter(ref)
		if !ok {
			break
		}
		back, ok := cat.PreviousChapter(next)
		if !ok || back.ID() != ref.ID() {
			t.Fatalf("previous of %s should be %s, got %v", next.ID(), ref.ID(), back)
		}
		ref = next
		steps++
	}

	if steps != total {
		t.Errorf("expected %d chapters, walked %d", total, steps)
	}
	if ref.ID() != "karoli_66022" {
		t.Errorf("expected walk to end at karoli_66022, got %s", ref.ID())
	}
}

func TestReferenceJSON(t *testing.T) {
	cat := loadCatalog(t)

	ref, _ := cat.Resolve("karoli", "Zsolt 119:1-6")
	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("failed to marshal reference: %v", err)
	}

	var got struct {
		ID        string `json:"id"`
		ChapterID string `json:"chapter_id"`
		Abbr      string `json:"abbr"`
		Path      string `json:"path"`
		Bible     string `json:"bible"`
		Book      struct {
			Index int    `json:"index"`
			Abbr  string `json:"abbr"`
			Title string `json:"title"`
			Slug  string `json:"slug"`
		} `json:"book"`
		Chapter int     `json:"chapter"`
		Verses  *string `json:"verses"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal %s: %v", data, err)
	}

	if got.ID != "karoli_19119_1-6" || got.ChapterID != "karoli_19119" {
		t.Errorf("unexpected ids: %s", data)
	}
	if got.Book.Index != 19 || got.Book.Slug != "zsolt" || got.Book.Title != "Zsoltárok könyve" {
		t.Errorf("unexpected book: %s", data)
	}
	if got.Verses == nil || *got.Verses != "1-6" {
		t.Errorf("expected verses 1-6: %s", data)
	}

	chapterOnly, _ := cat.Resolve("karoli", "Zsolt 119")
	data, _ = json.Marshal(chapterOnly)
	got.Verses = nil
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal %s: %v", data, err)
	}
	if got.Verses != nil {
		t.Errorf("expected verses to be omitted: %s", data)
	}
}
