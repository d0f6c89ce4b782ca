package inline

import "github.com/yaklabco/mdblocks/pkg/richdoc"

// delimiter describes one emphasis marker pair.
type delimiter struct {
	marker []rune
	style  richdoc.Style
}

//nolint:gochecknoglobals // Read-only lookup table.
var (
	boldDelim   = delimiter{marker: []rune("**"), style: richdoc.Bold}
	strikeDelim = delimiter{marker: []rune("~~"), style: richdoc.Strikethrough}
	italicDelim = delimiter{marker: []rune("_"), style: richdoc.Italic}
)

// decoder holds the state of one left-to-right scan. It never escapes a
// single Decode call.
type decoder struct {
	src    []rune
	pos    int
	out    []rune
	styles []richdoc.StyleRange
	links  []richdoc.LinkRange
}

// Decode scans raw markup and returns the plain text with all matched
// markers stripped, the style ranges and the link ranges, each ordered by
// offset. Dangling delimiters are kept as literal text; Decode never fails.
func Decode(raw string) (string, []richdoc.StyleRange, []richdoc.LinkRange) {
	d := &decoder{
		src: []rune(raw),
		out: make([]rune, 0, len(raw)),
	}
	d.run()
	return string(d.out), d.styles, d.links
}

func (d *decoder) run() {
	for d.pos < len(d.src) {
		r := d.src[d.pos]
		switch {
		case r == '\\' && d.pos+1 < len(d.src) && isEscapable(d.src[d.pos+1]):
			d.out = append(d.out, d.src[d.pos+1])
			d.pos += 2
		case d.hasPrefix(boldDelim.marker):
			d.emphasis(boldDelim)
		case d.hasPrefix(strikeDelim.marker):
			d.emphasis(strikeDelim)
		case r == '_':
			d.emphasis(italicDelim)
		case r == '[':
			if !d.link() {
				d.literal(1)
			}
		default:
			d.literal(1)
		}
	}
}

// literal copies n source runes to the output unchanged.
func (d *decoder) literal(n int) {
	d.out = append(d.out, d.src[d.pos:d.pos+n]...)
	d.pos += n
}

func (d *decoder) hasPrefix(marker []rune) bool {
	return hasPrefixAt(d.src, d.pos, marker)
}

// emphasis handles an opening marker at the cursor. Without a closer, or with
// nothing between the markers, the opener is emitted literally.
func (d *decoder) emphasis(delim delimiter) {
	start := d.pos + len(delim.marker)
	end := findUnescaped(d.src, start, delim.marker)
	if end <= start {
		d.literal(len(delim.marker))
		return
	}

	offset := len(d.out)
	d.out = append(d.out, unescape(d.src[start:end])...)
	d.styles = append(d.styles, richdoc.StyleRange{
		Style:  delim.style,
		Offset: offset,
		Length: len(d.out) - offset,
	})
	d.pos = end + len(delim.marker)
}

// link handles "[label](href)" at the cursor. The label is decoded again to
// strip its markers; styles found inside it are dropped because link and
// style ranges never overlap.
func (d *decoder) link() bool {
	labelStart := d.pos + 1
	labelEnd := findUnescaped(d.src, labelStart, []rune("]"))
	if labelEnd <= labelStart || labelEnd+1 >= len(d.src) || d.src[labelEnd+1] != '(' {
		return false
	}

	hrefStart := labelEnd + 2
	hrefEnd := findUnescaped(d.src, hrefStart, []rune(")"))
	if hrefEnd < 0 {
		return false
	}

	label, _, _ := Decode(string(d.src[labelStart:labelEnd]))
	if label == "" {
		return false
	}

	offset := len(d.out)
	d.out = append(d.out, []rune(label)...)
	d.links = append(d.links, richdoc.LinkRange{
		Offset: offset,
		Length: len(d.out) - offset,
		Href:   string(unescape(d.src[hrefStart:hrefEnd])),
	})
	d.pos = hrefEnd + 1
	return true
}

// findUnescaped returns the index of the first occurrence of marker at or
// after from that is not inside a backslash escape, or -1.
func findUnescaped(src []rune, from int, marker []rune) int {
	for i := from; i < len(src); i++ {
		if src[i] == '\\' && i+1 < len(src) && isEscapable(src[i+1]) {
			i++
			continue
		}
		if hasPrefixAt(src, i, marker) {
			return i
		}
	}
	return -1
}

func hasPrefixAt(src []rune, at int, marker []rune) bool {
	if at+len(marker) > len(src) {
		return false
	}
	for i, r := range marker {
		if src[at+i] != r {
			return false
		}
	}
	return true
}
