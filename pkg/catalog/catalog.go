// Package catalog loads, stores and checks the translation and book tables
// that citation resolution runs against.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"

	"github.com/bibliaolvaso/reference/internal/logging"
	"github.com/bibliaolvaso/reference/pkg/reference"
)

//go:embed data/hu.json
var bundled []byte

// Format identifies an on-disk catalog encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// DetectFormat picks the format from a file name. A trailing ".xz" marks a
// compressed JSON or YAML file.
func DetectFormat(path string) (format Format, compressed bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".xz") {
		compressed = true
		name = strings.TrimSuffix(name, ".xz")
	}

	switch filepath.Ext(name) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		format = FormatSQLite
	default:
		return "", false, newError(FormatError, ErrUnknownFormat, nil, "cannot tell format of %s", path)
	}

	if compressed && format == FormatSQLite {
		return "", false, newError(FormatError, ErrUnsupportedXZ, nil, "%s", path)
	}
	return format, compressed, nil
}

// Default returns the bundled Hungarian catalog (karoli and ujforditas).
func Default() (*reference.Catalog, error) {
	doc, err := DefaultDocument()
	if err != nil {
		return nil, err
	}
	return doc.Catalog(), nil
}

// DefaultDocument returns the bundled catalog in its stored form.
func DefaultDocument() (*Document, error) {
	return Decode(bytes.NewReader(bundled), FormatJSON)
}

// Open loads a catalog file. An empty path selects the bundled catalog.
func Open(path string) (*reference.Catalog, error) {
	doc, err := OpenDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Catalog(), nil
}

// OpenDocument loads a catalog file without building the lookup tables.
func OpenDocument(path string) (*Document, error) {
	if path == "" {
		logging.Debug("using bundled catalog")
		return DefaultDocument()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, newError(FileError, ErrInvalidCatalog, err, "cannot open %s", path)
	}

	format, compressed, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if format == FormatSQLite {
		return ReadSQLite(path)
	}

	f, err := os.Open(path) // nolint: gosec
	if err != nil {
		return nil, newError(FileError, ErrInvalidCatalog, err, "cannot open %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, newError(ParseError, fmt.Errorf("failed to open xz stream: %w", err), err, "%s", path)
		}
		r = xr
	}

	doc, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	logging.Debug("catalog loaded", "path", path, "format", format, "bibles", len(doc.Bibles), "books", len(doc.Books))
	return doc, nil
}

// Decode reads a JSON or YAML document and checks that it is usable.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, newError(ParseError, fmt.Errorf("failed to parse catalog JSON: %w", err), err, "")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, newError(ParseError, fmt.Errorf("failed to parse catalog YAML: %w", err), err, "")
		}
	default:
		return nil, newError(FormatError, ErrUnknownFormat, nil, "cannot decode %q from a stream", format)
	}

	if err := doc.check(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// check rejects documents that cannot produce a catalog at all. The full
// invariant list is Verify's job.
func (d *Document) check() error {
	if d.Schema != SchemaVersion {
		return newError(FormatError, ErrInvalidCatalog, nil, "unsupported schema %d", d.Schema)
	}
	if len(d.Bibles) == 0 {
		return newError(ConsistencyError, ErrNoTranslations, nil, "")
	}
	return nil
}

// Encode writes a document as JSON or YAML.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return newError(FormatError, fmt.Errorf("failed to encode catalog JSON: %w", err), err, "")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return newError(FormatError, fmt.Errorf("failed to encode catalog YAML: %w", err), err, "")
		}
		if err := enc.Close(); err != nil {
			return newError(FormatError, fmt.Errorf("failed to flush catalog YAML: %w", err), err, "")
		}
	default:
		return newError(FormatError, ErrUnknownFormat, nil, "cannot encode %q to a stream", format)
	}
	return nil
}

// WriteFile stores a document in the format its path names.
func WriteFile(path string, doc *Document) error {
	format, compressed, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if format == FormatSQLite {
		return WriteSQLite(path, doc)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600) // nolint: gosec
	if err != nil {
		return newError(FileError, fmt.Errorf("failed to create %s: %w", path, err), err, "")
	}

	var w io.Writer = f
	var xw *xz.Writer
	if compressed {
		xw, err = xz.NewWriter(f)
		if err != nil {
			f.Close()
			return newError(FormatError, fmt.Errorf("failed to start xz stream: %w", err), err, "")
		}
		w = xw
	}

	if err := Encode(w, doc, format); err != nil {
		f.Close()
		return err
	}
	if xw != nil {
		if err := xw.Close(); err != nil {
			f.Close()
			return newError(FileError, fmt.Errorf("failed to finish xz stream: %w", err), err, "")
		}
	}
	if err := f.Close(); err != nil {
		return newError(FileError, fmt.Errorf("failed to write %s: %w", path, err), err, "")
	}

	logging.Debug("catalog written", "path", path, "format", format, "compressed", compressed)
	return nil
}
