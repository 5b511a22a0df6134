package reference

import (
	"regexp"
	"strconv"
	"strings"
)

// Citation is the raw triple extracted from free text before the book token
// is matched against a catalog.
type Citation struct {
	Book    string
	Chapter int
	Verses  string
}

var (
	// "23", "23/1", "19 119", "62/004:1-3"
	numericForm = regexp.MustCompile(`^ *(\d+)(?:[ /]+(\d+)(?:[:. /]+([\d, \-]+))?)? *$`)

	// "1Móz 1", "1. Mózes 1", "Ézs1", "Zsolt 119:1-6"
	flexibleForm = regexp.MustCompile(`^ *(\d*[. ]*[^\d]+)[ /]*(\d+)?(?:[:. /]+([\d, \-]+))? *$`)
)

// ParseCitation extracts a book token, chapter and verse specifier from text.
// The numeric form is tried first; the flexible form only when it does not
// match. Either must match the whole input, ignoring surrounding spaces. A
// missing chapter means chapter 1, and chapter 0 is rejected.
func ParseCitation(text string) (Citation, bool) {
	text = strings.Trim(text, " ")

	m := numericForm.FindStringSubmatch(text)
	if m == nil {
		m = flexibleForm.FindStringSubmatch(text)
	}
	if m == nil || m[1] == "" {
		return Citation{}, false
	}

	chapter := 1
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil || n == 0 {
			return Citation{}, false
		}
		chapter = n
	}

	return Citation{Book: m[1], Chapter: chapter, Verses: m[3]}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
