package reference

import "testing"

func TestParseCitation(t *testing.T) {
	tests := []struct {
		in   string
		want Citation
	}{
		{"23", Citation{Book: "23", Chapter: 1}},
		{"23/1", Citation{Book: "23", Chapter: 1}},
		{"62/004", Citation{Book: "62", Chapter: 4}},
		{"19 119", Citation{Book: "19", Chapter: 119}},
		{"19/119:1-6", Citation{Book: "19", Chapter: 119, Verses: "1-6"}},
		{"1Móz 1", Citation{Book: "1Móz ", Chapter: 1}},
		{"1. Mózes 1", Citation{Book: "1. Mózes ", Chapter: 1}},
		{"Ézs", Citation{Book: "Ézs", Chapter: 1}},
		{"Ézs1", Citation{Book: "Ézs", Chapter: 1}},
		{"Zsolt 119:1-6", Citation{Book: "Zsolt ", Chapter: 119, Verses: "1-6"}},
		{"Zsolt 119.1, 3", Citation{Book: "Zsolt ", Chapter: 119, Verses: "1, 3"}},
		{"  Jel 22  ", Citation{Book: "Jel ", Chapter: 22}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCitation(tt.in)
			if !ok {
				t.Fatalf("expected %q to parse", tt.in)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseCitationRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"Ruth 1x",
		"0/0",
		"1/0",
		"1Móz 0",
		"Jel 99999999999999999999999",
	} {
		t.Run(in, func(t *testing.T) {
			if c, ok := ParseCitation(in); ok {
				t.Errorf("expected %q to be rejected, got %+v", in, c)
			}
		})
	}
}

func FuzzParseCitation(f *testing.F) {
	seeds := []string{
		"1/1",
		"1Móz 1",
		"1. Mózes 1",
		"Zsolt 119:1-6",
		"Ézs1",
		"62/004",
		"Ruth 1x",
		"0/0",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, text string) {
		c, ok := ParseCitation(text)
		if !ok {
			return
		}
		if c.Chapter < 1 {
			t.Errorf("parsed chapter below 1 from %q: %+v", text, c)
		}
		if c.Book == "" {
			t.Errorf("parsed empty book token from %q", text)
		}
	})
}
