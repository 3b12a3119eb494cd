package printer

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// DefaultWidth is the column count of an 80 mm receipt in font A.
const DefaultWidth = 48

// Wrap collapses runs of whitespace (newlines included) to single spaces and
// breaks the result into lines of at most width columns. Words longer than a
// line are split.
func Wrap(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if flat == "" {
		return ""
	}
	return wrap.String(wordwrap.String(flat, width), width)
}

// asciiPunct maps typographic punctuation that CP437 lacks onto ASCII. It
// runs before wrapping so the expanded text still fits the width.
var asciiPunct = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'",
	"\u201C", "\"", "\u201D", "\"",
	"\u2013", "-", "\u2014", "-",
	"\u2026", "...",
	"\u00A0", " ",
)

// segment is one step of a receipt: wrapped text, a horizontal rule, or a
// QR code.
type segment struct {
	text string
	rule bool
	qr   string
}

// layout turns a composition into receipt segments. A rule follows the
// content, the citation and the reflection; the lesson link becomes a QR code.
func layout(c vignette.Composition, width int) []segment {
	var segs []segment
	for _, b := range c.Blocks {
		body := Wrap(asciiPunct.Replace(b.Text), width)
		switch b.Kind {
		case vignette.BlockWarning:
			segs = append(segs, segment{text: body + "\n\n"})
		case vignette.BlockContent, vignette.BlockCitation, vignette.BlockReflection:
			segs = append(segs, segment{text: body + "\n"}, segment{rule: true})
		case vignette.BlockLesson:
			segs = append(segs, segment{text: body + "\n"})
			if c.LessonLink != "" {
				segs = append(segs, segment{qr: c.LessonLink})
			}
		}
	}
	return segs
}

func rule(width int) string {
	return strings.Repeat("-", width) + "\n"
}
