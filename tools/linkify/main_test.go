package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runLinkify(t *testing.T, args ...string) error {
	t.Helper()
	cli := &CLI{}
	parser, err := newParser(context.Background(), cli)
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kongCtx.Run()
}

func writePage(t *testing.T, dir, name, body string) {
	t.Helper()
	page := "<html><head></head><body>" + body + "</body></html>"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(page), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLinkifyRewritesPages(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")
	writePage(t, in, "index.html", `<p><a class="ref">Zsolt 119:1-6</a> and <span data-ref="Jel 22"></span></p>`)

	if err := runLinkify(t, "--in", in, "--out", out, "--base-url", "/bible", "-q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	html := string(data)
	for _, want := range []string{
		`href="/bible/karoli/zsolt/119/1-6"`,
		`data-ref-id="karoli_19119_1-6"`,
		`data-ref-id="karoli_66022"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %s, got %s", want, html)
		}
	}
}

func TestLinkifyBible(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")
	writePage(t, in, "index.html", `<a class="ref">Ésa 1</a>`)

	if err := runLinkify(t, "--in", in, "--out", out, "--bible", "ujforditas", "-q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(data), `href="/ujforditas/ezs/1"`) {
		t.Errorf("expected ujforditas link, got %s", data)
	}
}

func TestLinkifyFailures(t *testing.T) {
	tests := []struct {
		name string
		page string
		args []string
	}{
		{"unresolved citation", `<a class="ref">Je 1</a>`, nil},
		{"unknown translation", `<a class="ref">Jel 1</a>`, []string{"--bible", "quran"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := t.TempDir()
			out := filepath.Join(t.TempDir(), "site")
			writePage(t, in, "index.html", tt.page)

			args := append([]string{"--in", in, "--out", out, "-q"}, tt.args...)
			if err := runLinkify(t, args...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLinkifyMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if err := runLinkify(t, "--in", missing, "--out", t.TempDir()); err == nil {
		t.Error("expected error for a missing input directory")
	}
}
