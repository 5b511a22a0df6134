package linkify

import "time"

// Problem is a citation or link that could not be handled.
type Problem struct {
	File     string
	Type     string // "unresolved", "parse", "write", "id", "href"
	Message  string
	Expected interface{}
	Actual   interface{}
}

// Link records one rewritten citation.
type Link struct {
	Text string
	ID   string
	Href string
}

// FileResult holds the outcome of rewriting one HTML document.
type FileResult struct {
	File     string
	Links    []Link
	Problems []Problem
}

// FileMap tracks source to output file mappings
type FileMap map[string]string

// ProcessResult holds the result of processing a directory
type ProcessResult struct {
	Bible          string
	FilesProcessed int
	FilesSkipped   int
	LinksRewritten int
	Problems       []Problem
	FileMap        FileMap
	Stats          Stats
	StartTime      time.Time
	EndTime        time.Time
}

// Stats counts problems by kind.
type Stats struct {
	Unresolved  int // citations that did not resolve
	BrokenLinks int // rewritten links that failed validation
}
