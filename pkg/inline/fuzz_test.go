package inline_test

import (
	"testing"

	"github.com/yaklabco/mdblocks/pkg/inline"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

func FuzzDecodeEncode(f *testing.F) {
	seeds := []string{
		"Hello **World**",
		"_a_ ~~b~~ [c](d)",
		`\*not\* [x\]](y\))`,
		"**unclosed _mixed~~",
		"[[a](b)](c)",
		"héllo _wörld_",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		text, styles, links := inline.Decode(raw)
		if err := richdoc.ValidateRanges(richdoc.TextLen(text), styles, links); err != nil {
			t.Fatalf("Decode(%q) produced invalid ranges: %v", raw, err)
		}

		encoded, err := inline.Encode(text, styles, links)
		if err != nil {
			t.Fatalf("Encode after Decode(%q): %v", raw, err)
		}

		text2, styles2, links2 := inline.Decode(encoded)
		if text2 != text {
			t.Fatalf("text changed: %q -> %q (encoded %q)", text, text2, encoded)
		}
		if len(styles2) != len(styles) || len(links2) != len(links) {
			t.Fatalf("ranges changed for %q (encoded %q)", raw, encoded)
		}
		for i := range styles {
			if styles[i] != styles2[i] {
				t.Fatalf("style %d changed: %+v -> %+v", i, styles[i], styles2[i])
			}
		}
		for i := range links {
			if links[i] != links2[i] {
				t.Fatalf("link %d changed: %+v -> %+v", i, links[i], links2[i])
			}
		}
	})
}
