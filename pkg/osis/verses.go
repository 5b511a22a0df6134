package osis

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// VerseRange is an inclusive span of verses. Start equals End for a single
// verse.
type VerseRange struct {
	Start int
	End   int
}

// versesGrammar reads verse specifiers such as "5", "1-6" or "1, 3-4".
//
//nolint:govet // participle grammar tags are not standard struct tags
type versesGrammar struct {
	Ranges []*rangePart `@@ ( "," @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type rangePart struct {
	Start int  `@Int`
	End   *int `( "-" @Int )?`
}

var versesLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[,\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var versesParser = participle.MustBuild[versesGrammar](
	participle.Lexer(versesLexer),
	participle.Elide("Whitespace"),
)

// ParseVerses splits a verse specifier into ranges. It only checks the
// syntax; verse bounds are left to canonref validation in BibleRefs.
func ParseVerses(spec string) ([]VerseRange, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty verse specifier")
	}

	parsed, err := versesParser.ParseString("", spec)
	if err != nil {
		return nil, fmt.Errorf("invalid verse specifier %q: %w", spec, err)
	}

	out := make([]VerseRange, 0, len(parsed.Ranges))
	for _, r := range parsed.Ranges {
		vr := VerseRange{Start: r.Start, End: r.Start}
		if r.End != nil {
			vr.End = *r.End
		}
		out = append(out, vr)
	}
	return out, nil
}
