package linkify

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bibliaolvaso/reference/internal/logging"
	"github.com/bibliaolvaso/reference/pkg/catalog"
	"github.com/bibliaolvaso/reference/pkg/reference"
)

// Processor orchestrates rewriting, validation, and output of HTML files
type Processor struct {
	linker    *Linker
	validator *Validator
	inputDir  string
	outputDir string
}

// NewProcessor creates a processor that rewrites the HTML files under
// inputDir into outputDir.
func NewProcessor(cat *reference.Catalog, bible, baseURL, inputDir, outputDir string) (*Processor, error) {
	if _, ok := cat.Translation(bible); !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownTranslation, bible)
	}

	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", inputDir)
	}
	if filepath.Clean(inputDir) == filepath.Clean(outputDir) {
		return nil, fmt.Errorf("output directory must differ from input directory: %s", outputDir)
	}

	return &Processor{
		linker:    &Linker{Catalog: cat, Bible: bible, BaseURL: baseURL},
		validator: NewValidator(cat, bible, baseURL),
		inputDir:  inputDir,
		outputDir: outputDir,
	}, nil
}

func isHTML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

// Files lists the HTML files under the input directory relative to it.
func (proc *Processor) Files() ([]string, error) {
	var files []string
	err := filepath.WalkDir(proc.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != proc.inputDir && filepath.Clean(path) == filepath.Clean(proc.outputDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isHTML(path) {
			return nil
		}
		rel, err := filepath.Rel(proc.inputDir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list input files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Process rewrites every HTML file under the input directory.
func (proc *Processor) Process() (*ProcessResult, error) {
	result := &ProcessResult{
		Bible:     proc.linker.Bible,
		FileMap:   make(FileMap),
		StartTime: time.Now(),
	}

	files, err := proc.Files()
	if err != nil {
		return result, err
	}

	for _, rel := range files {
		result.FilesProcessed++

		fr, err := proc.ProcessFile(rel)
		if err != nil {
			result.Problems = append(result.Problems, Problem{
				File:    rel,
				Type:    "write",
				Message: err.Error(),
			})
			result.FilesSkipped++
			continue
		}

		result.LinksRewritten += len(fr.Links)
		result.Problems = append(result.Problems, fr.Problems...)
		proc.updateStats(result, fr.Problems)
		result.FileMap[rel] = filepath.Join(proc.outputDir, rel)
	}

	result.EndTime = time.Now()
	return result, nil
}

// ProcessFile rewrites one file, given relative to the input directory, and
// validates what was written.
func (proc *Processor) ProcessFile(rel string) (*FileResult, error) {
	src, err := os.ReadFile(filepath.Join(proc.inputDir, rel)) // nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var out bytes.Buffer
	fr, err := proc.linker.Rewrite(bytes.NewReader(src), &out, rel)
	if err != nil {
		return nil, err
	}

	dst := filepath.Join(proc.outputDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(dst, out.Bytes(), 0600); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	fr.Problems = append(fr.Problems, proc.validator.ValidateFile(rel, out.Bytes())...)
	logging.Debug("file rewritten", "file", rel, "links", len(fr.Links), "problems", len(fr.Problems))
	return fr, nil
}

// updateStats tracks problem types
func (proc *Processor) updateStats(result *ProcessResult, problems []Problem) {
	for _, p := range problems {
		switch p.Type {
		case "unresolved":
			result.Stats.Unresolved++
		case "id", "href":
			result.Stats.BrokenLinks++
		}
	}
}

// PrintResult prints the processing result in a readable format
func PrintResult(w io.Writer, result *ProcessResult) {
	fmt.Fprintf(w, "\n========================================\n")
	fmt.Fprintf(w, "Bible: %s\n", result.Bible)
	fmt.Fprintf(w, "Duration: %v\n", result.EndTime.Sub(result.StartTime))
	fmt.Fprintf(w, "Files Processed: %d\n", result.FilesProcessed)
	fmt.Fprintf(w, "Files Skipped: %d\n", result.FilesSkipped)
	fmt.Fprintf(w, "Links Rewritten: %d\n", result.LinksRewritten)

	if result.Stats.Unresolved > 0 || result.Stats.BrokenLinks > 0 {
		fmt.Fprintf(w, "\nVerification Issues:\n")
		if result.Stats.Unresolved > 0 {
			fmt.Fprintf(w, "  Unresolved citations: %d\n", result.Stats.Unresolved)
		}
		if result.Stats.BrokenLinks > 0 {
			fmt.Fprintf(w, "  Broken links: %d\n", result.Stats.BrokenLinks)
		}
	}

	if len(result.Problems) > 0 {
		fmt.Fprintf(w, "Problems: %d\n", len(result.Problems))
		for i, p := range result.Problems {
			fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, p.Type, p.Message)
			if p.File != "" {
				fmt.Fprintf(w, "     File: %s\n", p.File)
			}
			if p.Expected != nil {
				fmt.Fprintf(w, "     Expected: %v\n", p.Expected)
			}
			if p.Actual != nil {
				fmt.Fprintf(w, "     Actual: %v\n", p.Actual)
			}
		}
	} else {
		fmt.Fprintf(w, "Status: SUCCESS\n")
	}

	if len(result.FileMap) > 0 {
		fmt.Fprintf(w, "Output Files: %d\n", len(result.FileMap))
		keys := make([]string, 0, len(result.FileMap))
		for k := range result.FileMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i >= 5 {
				fmt.Fprintf(w, "  ... and %d more\n", len(keys)-5)
				break
			}
			fmt.Fprintf(w, "  %s -> %s\n", k, result.FileMap[k])
		}
	}
	fmt.Fprintf(w, "========================================\n\n")
}
