package linkify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestNewProcessor(t *testing.T) {
	cat := loadCatalog(t)
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "file.html")
	writeFixture(t, tempDir, "file.html", "")

	tests := []struct {
		name       string
		bible      string
		input      string
		output     string
		shouldFail bool
	}{
		{"valid", "karoli", tempDir, filepath.Join(tempDir, "out"), false},
		{"unknown translation", "quran", tempDir, filepath.Join(tempDir, "out"), true},
		{"missing input", "karoli", filepath.Join(tempDir, "missing"), filepath.Join(tempDir, "out"), true},
		{"input is a file", "karoli", file, filepath.Join(tempDir, "out"), true},
		{"output equals input", "karoli", tempDir, tempDir + "/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProcessor(cat, tt.bible, "", tt.input, tt.output)
			if tt.shouldFail && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.shouldFail && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	cat := loadCatalog(t)
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")

	writeFixture(t, in, "a.html", `<p><a class="ref">Zsolt 119:1-6</a> and <a class="ref">Foo 1</a></p>`)
	writeFixture(t, in, "nested/b.htm", `<p><span data-ref="62/004">1 John 4</span></p>`)
	writeFixture(t, in, "notes.txt", `<a class="ref">Jel 22</a>`)

	proc, err := NewProcessor(cat, "karoli", "/bible", in, out)
	if err != nil {
		t.Fatalf("failed to create processor: %v", err)
	}

	result, err := proc.Process()
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if result.FilesProcessed != 2 {
		t.Errorf("expected 2 files processed, got %d", result.FilesProcessed)
	}
	if result.FilesSkipped != 0 {
		t.Errorf("expected 0 files skipped, got %d", result.FilesSkipped)
	}
	if result.LinksRewritten != 2 {
		t.Errorf("expected 2 links rewritten, got %d", result.LinksRewritten)
	}
	if result.Stats.Unresolved != 1 || result.Stats.BrokenLinks != 0 {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}
	if len(result.FileMap) != 2 {
		t.Errorf("expected 2 file map entries, got %v", result.FileMap)
	}

	data, err := os.ReadFile(filepath.Join(out, "a.html"))
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if !strings.Contains(string(data), `href="/bible/karoli/zsolt/119/1-6"`) {
		t.Errorf("expected rewritten link in output, got %s", data)
	}
	if _, err := os.Stat(filepath.Join(out, "nested", "b.htm")); err != nil {
		t.Errorf("expected nested output file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "notes.txt")); err == nil {
		t.Error("non-HTML files should not be copied")
	}
}

func TestProcessSkipsOutputInsideInput(t *testing.T) {
	cat := loadCatalog(t)
	in := t.TempDir()
	out := filepath.Join(in, "out")

	writeFixture(t, in, "a.html", `<a class="ref">Jel 22</a>`)
	writeFixture(t, out, "old.html", `<a class="ref">Jel 21</a>`)

	proc, err := NewProcessor(cat, "karoli", "", in, out)
	if err != nil {
		t.Fatalf("failed to create processor: %v", err)
	}
	files, err := proc.Files()
	if err != nil {
		t.Fatalf("failed to list files: %v", err)
	}
	if len(files) != 1 || files[0] != "a.html" {
		t.Errorf("expected only a.html, got %v", files)
	}
}

func TestPrintResult(t *testing.T) {
	result := &ProcessResult{
		Bible:          "karoli",
		FilesProcessed: 3,
		FilesSkipped:   1,
		LinksRewritten: 7,
		Problems: []Problem{
			{File: "a.html", Type: "unresolved", Message: "citation does not resolve", Actual: "Foo 1"},
		},
		Stats:   Stats{Unresolved: 1},
		FileMap: FileMap{"a.html": "out/a.html"},
	}

	var buf bytes.Buffer
	PrintResult(&buf, result)
	out := buf.String()

	for _, want := range []string{
		"Bible: karoli",
		"Files Processed: 3",
		"Links Rewritten: 7",
		"Unresolved citations: 1",
		"1. [unresolved] citation does not resolve",
		"Actual: Foo 1",
		"a.html -> out/a.html",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected report to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Status: SUCCESS") {
		t.Error("report with problems should not claim success")
	}
}

func TestWatch(t *testing.T) {
	cat := loadCatalog(t)
	in := t.TempDir()
	out := t.TempDir()

	proc, err := NewProcessor(cat, "karoli", "", in, out)
	if err != nil {
		t.Fatalf("failed to create processor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan *FileResult, 16)
	done := make(chan error, 1)
	go func() {
		done <- proc.Watch(ctx, func(fr *FileResult, err error) {
			// A create event can arrive before the content is written.
			if err != nil || len(fr.Links) == 0 {
				return
			}
			select {
			case results <- fr:
			default:
			}
		})
	}()

	// The watcher may not be registered yet, so keep touching the file.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got *FileResult
	for got == nil {
		select {
		case fr := <-results:
			got = fr
		case <-tick.C:
			writeFixture(t, in, "live.html", `<a class="ref">Jel 22</a>`)
		case <-deadline:
			cancel()
			t.Fatal("timed out waiting for watch result")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watch returned error: %v", err)
	}

	if got.File != "live.html" || len(got.Links) != 1 || got.Links[0].ID != "karoli_66022" {
		t.Errorf("unexpected watch result: %+v", got)
	}
	if _, err := os.Stat(filepath.Join(out, "live.html")); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}
