package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/bibliaolvaso/reference/internal/logging"
)

const sqliteSchema = `
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE translations (
	id                 TEXT PRIMARY KEY,
	position           INTEGER NOT NULL,
	lang               TEXT NOT NULL,
	name               TEXT NOT NULL,
	short_name         TEXT NOT NULL DEFAULT '',
	copyright          TEXT NOT NULL DEFAULT '',
	first_published_in INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE books (
	id        TEXT PRIMARY KEY,
	position  INTEGER NOT NULL,
	bible     TEXT NOT NULL REFERENCES translations(id),
	idx       INTEGER NOT NULL,
	title     TEXT NOT NULL,
	abbr      TEXT NOT NULL,
	chapters  INTEGER NOT NULL,
	testament TEXT NOT NULL
);
CREATE TABLE book_slugs (
	book_id  TEXT NOT NULL REFERENCES books(id),
	position INTEGER NOT NULL,
	slug     TEXT NOT NULL,
	PRIMARY KEY (book_id, position)
);
`

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, newError(FileError, fmt.Errorf("failed to open sqlite database: %w", err), err, "%s", path)
	}
	return db, nil
}

// WriteSQLite stores a document as a SQLite database, replacing any file at
// path. The document fingerprint is kept in the meta table.
func WriteSQLite(path string, doc *Document) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return newError(FileError, fmt.Errorf("failed to replace %s: %w", path, err), err, "")
	}

	fingerprint, err := Fingerprint(doc)
	if err != nil {
		return err
	}

	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return newError(FileError, fmt.Errorf("failed to begin transaction: %w", err), err, "")
	}
	defer tx.Rollback() // nolint: errcheck

	if _, err := tx.Exec(sqliteSchema); err != nil {
		return newError(FormatError, fmt.Errorf("failed to create schema: %w", err), err, "")
	}

	meta := map[string]string{
		"schema":      strconv.Itoa(doc.Schema),
		"fingerprint": fingerprint,
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return newError(FormatError, fmt.Errorf("failed to write meta %s: %w", k, err), err, "")
		}
	}

	for i, t := range doc.Bibles {
		_, err := tx.Exec(
			`INSERT INTO translations (id, position, lang, name, short_name, copyright, first_published_in)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, i, t.Lang, t.Name, t.ShortName, t.Copyright, t.FirstPublishedIn,
		)
		if err != nil {
			return newError(FormatError, fmt.Errorf("failed to write translation %s: %w", t.ID, err), err, "")
		}
	}

	for i, b := range doc.Books {
		_, err := tx.Exec(
			`INSERT INTO books (id, position, bible, idx, title, abbr, chapters, testament)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, i, b.Bible, b.Index, b.Title, b.Abbr, b.Chapters, b.Testament,
		)
		if err != nil {
			return newError(FormatError, fmt.Errorf("failed to write book %s: %w", b.ID, err), err, "")
		}
		for j, slug := range b.Slugs {
			if _, err := tx.Exec(`INSERT INTO book_slugs (book_id, position, slug) VALUES (?, ?, ?)`, b.ID, j, slug); err != nil {
				return newError(FormatError, fmt.Errorf("failed to write slug %s of %s: %w", slug, b.ID, err), err, "")
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return newError(FileError, fmt.Errorf("failed to commit catalog: %w", err), err, "")
	}

	logging.Debug("catalog written", "path", path, "format", FormatSQLite, "fingerprint", fingerprint)
	return nil
}

// ReadSQLite loads a document written by WriteSQLite.
func ReadSQLite(path string) (*Document, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	doc := &Document{}

	var schema string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema'`).Scan(&schema); err != nil {
		return nil, newError(ParseError, fmt.Errorf("failed to read schema version: %w", err), err, "%s", path)
	}
	if doc.Schema, err = strconv.Atoi(schema); err != nil {
		return nil, newError(ParseError, fmt.Errorf("invalid schema version %q: %w", schema, err), err, "%s", path)
	}

	rows, err := db.Query(`SELECT id, lang, name, short_name, copyright, first_published_in
		FROM translations ORDER BY position`)
	if err != nil {
		return nil, newError(ParseError, fmt.Errorf("failed to query translations: %w", err), err, "%s", path)
	}
	for rows.Next() {
		var t TranslationData
		if err := rows.Scan(&t.ID, &t.Lang, &t.Name, &t.ShortName, &t.Copyright, &t.FirstPublishedIn); err != nil {
			rows.Close()
			return nil, newError(ParseError, fmt.Errorf("failed to scan translation: %w", err), err, "%s", path)
		}
		doc.Bibles = append(doc.Bibles, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, newError(ParseError, fmt.Errorf("failed to read translations: %w", err), err, "%s", path)
	}

	slugs, err := readSlugs(db)
	if err != nil {
		return nil, newError(ParseError, err, err, "%s", path)
	}

	rows, err = db.Query(`SELECT id, bible, idx, title, abbr, chapters, testament
		FROM books ORDER BY position`)
	if err != nil {
		return nil, newError(ParseError, fmt.Errorf("failed to query books: %w", err), err, "%s", path)
	}
	defer rows.Close()
	for rows.Next() {
		var b BookData
		if err := rows.Scan(&b.ID, &b.Bible, &b.Index, &b.Title, &b.Abbr, &b.Chapters, &b.Testament); err != nil {
			return nil, newError(ParseError, fmt.Errorf("failed to scan book: %w", err), err, "%s", path)
		}
		b.Slugs = slugs[b.ID]
		doc.Books = append(doc.Books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(ParseError, fmt.Errorf("failed to read books: %w", err), err, "%s", path)
	}

	if err := doc.check(); err != nil {
		return nil, err
	}
	logging.Debug("catalog loaded", "path", path, "format", FormatSQLite, "bibles", len(doc.Bibles), "books", len(doc.Books))
	return doc, nil
}

func readSlugs(db *sql.DB) (map[string][]string, error) {
	rows, err := db.Query(`SELECT book_id, slug FROM book_slugs ORDER BY book_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query slugs: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var id, slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, fmt.Errorf("failed to scan slug: %w", err)
		}
		out[id] = append(out[id], slug)
	}
	return out, rows.Err()
}

// StoredFingerprint returns the fingerprint recorded when the database was
// written.
func StoredFingerprint(path string) (string, error) {
	db, err := openDB(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	var fp string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'fingerprint'`).Scan(&fp); err != nil {
		return "", newError(ParseError, fmt.Errorf("failed to read fingerprint: %w", err), err, "%s", path)
	}
	return fp, nil
}
