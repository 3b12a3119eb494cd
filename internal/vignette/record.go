// Package vignette holds the session vignette engine: the record model, the
// per-session sampling pool, category-filtered random selection, reflection
// prompt choice and block composition.
package vignette

import (
	"fmt"
	"strings"
	"time"
)

// Category is the length classification of a vignette.
type Category int

const (
	Short  Category = 1
	Medium Category = 2
	Long   Category = 3
)

// Categories lists every category in display order.
var Categories = []Category{Short, Medium, Long}

// String returns the short category name.
func (c Category) String() string {
	switch c {
	case Short:
		return "Short"
	case Medium:
		return "Medium"
	case Long:
		return "Long"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Label returns the operator-facing description of the category.
func (c Category) Label() string {
	switch c {
	case Short:
		return "Short [fewer than 200 words]"
	case Medium:
		return "Medium [between 200 & 300 words]"
	case Long:
		return "Long [more than 300 words]"
	default:
		return c.String()
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= Short && c <= Long
}

// ParseCategory accepts either the numeric code ("1".."3") or the
// case-insensitive name ("short", "Medium", ...).
func ParseCategory(s string) (Category, error) {
	v := strings.TrimSpace(s)
	// Spreadsheets often hand integers back as "2.0".
	v = strings.TrimSuffix(v, ".0")
	for _, c := range Categories {
		if v == fmt.Sprintf("%d", int(c)) || strings.EqualFold(v, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("vignette: unknown length category %q", s)
}

// Citation carries the source fields that form the citation line.
type Citation struct {
	Page            string
	AuthorLast      string
	AuthorFirst     string
	PublicationDate string
	Title           string
	Venue           string
}

// Record is one vignette as loaded from the dataset. Records are treated as
// immutable once loaded.
type Record struct {
	ID          string
	Category    Category
	Content     string
	Warning     string
	Citation    Citation
	Reflections [4]string
	LessonTitle string
	LessonLink  string
}

// HasWarning reports whether a non-blank content warning is present.
func (r Record) HasWarning() bool {
	return strings.TrimSpace(r.Warning) != ""
}

// HasLesson reports whether both the lesson title and link are present.
func (r Record) HasLesson() bool {
	return strings.TrimSpace(r.LessonTitle) != "" && strings.TrimSpace(r.LessonLink) != ""
}

// DeliveryLogEntry is one row of the persistent delivery log.
type DeliveryLogEntry struct {
	RecordID           string
	Timestamp          time.Time
	ReflectionIncluded bool
	ReflectionText     string
}
