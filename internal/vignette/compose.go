package vignette

import (
	"fmt"
	"strings"
)

// BlockKind identifies the role of a composed block.
type BlockKind int

const (
	BlockWarning BlockKind = iota
	BlockContent
	BlockCitation
	BlockReflection
	BlockLesson
)

// String returns the block kind name.
func (k BlockKind) String() string {
	switch k {
	case BlockWarning:
		return "Warning"
	case BlockContent:
		return "Content"
	case BlockCitation:
		return "Citation"
	case BlockReflection:
		return "Reflection"
	case BlockLesson:
		return "Lesson"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

// Block is one labeled piece of a composed vignette.
type Block struct {
	Kind BlockKind
	Text string
}

// Composition is the output of Compose: the ordered blocks plus the values
// the delivery step needs separately.
type Composition struct {
	RecordID string
	Blocks   []Block

	// ReflectionIncluded is true when a Reflection block was emitted;
	// Reflection then holds the exact prompt shown.
	ReflectionIncluded bool
	Reflection         string

	// LessonLink is rendered as a scannable code rather than text. Empty
	// when no Lesson block was emitted.
	LessonLink string
}

// Kinds returns the block kinds in order.
func (c Composition) Kinds() []BlockKind {
	kinds := make([]BlockKind, len(c.Blocks))
	for i, b := range c.Blocks {
		kinds[i] = b.Kind
	}
	return kinds
}

// Text joins the blocks into a single screen-readable string, with the
// lesson link on its own line after the Lesson block.
func (c Composition) Text() string {
	var sb strings.Builder
	for i, b := range c.Blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(b.Text)
		if b.Kind == BlockLesson && c.LessonLink != "" {
			sb.WriteString("\n")
			sb.WriteString(c.LessonLink)
		}
	}
	return sb.String()
}

// Compose turns a record into its ordered block sequence:
// [Warning] Content Citation [Reflection] [Lesson].
// rng is consulted only when includeReflection is set and the record has at
// least one prompt, so a fixed source yields a reproducible result.
func Compose(r Record, includeReflection bool, rng Rand) (Composition, error) {
	if strings.TrimSpace(r.Content) == "" {
		return Composition{}, &MissingFieldError{RecordID: r.ID, Field: "Content"}
	}
	citation, err := CitationLine(r)
	if err != nil {
		return Composition{}, err
	}

	comp := Composition{RecordID: r.ID}
	if r.HasWarning() {
		comp.Blocks = append(comp.Blocks, Block{Kind: BlockWarning, Text: "Content Warning: " + r.Warning})
	}
	comp.Blocks = append(comp.Blocks,
		Block{Kind: BlockContent, Text: r.Content},
		Block{Kind: BlockCitation, Text: citation},
	)

	if includeReflection {
		if q, ok := PickReflection(r, rng); ok {
			comp.Blocks = append(comp.Blocks, Block{Kind: BlockReflection, Text: "Reflection: " + q})
			comp.ReflectionIncluded = true
			comp.Reflection = q
		}
	}

	if r.HasLesson() {
		comp.Blocks = append(comp.Blocks, Block{Kind: BlockLesson, Text: LessonLine(r.LessonTitle)})
		comp.LessonLink = r.LessonLink
	}
	return comp, nil
}

// CitationLine formats the citation for r. Every citation field is required.
func CitationLine(r Record) (string, error) {
	c := r.Citation
	fields := []struct {
		name  string
		value string
	}{
		{"Page_No", c.Page},
		{"Author_last", c.AuthorLast},
		{"Author_first", c.AuthorFirst},
		{"Publication_date", c.PublicationDate},
		{"Title", c.Title},
		{"Publisher_Journal_Website", c.Venue},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return "", &MissingFieldError{RecordID: r.ID, Field: f.name}
		}
	}
	return fmt.Sprintf("Excerpted from page/s: %s in %s, %s. %s. %s. %s.",
		c.Page, c.AuthorLast, c.AuthorFirst, c.PublicationDate, c.Title, c.Venue), nil
}

// LessonLine is the sentence that introduces a lesson link.
func LessonLine(title string) string {
	return fmt.Sprintf("Curious about how to explore \"%s\" in your ethnographic writing? Check out this short lesson:", title)
}
