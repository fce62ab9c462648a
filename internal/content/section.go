// Package content parses section-tagged language files into typed,
// optional-field records and writes them into a page by element ID.
package content

import (
	"errors"
	"strings"
)

// Section names one block of a language file.
type Section string

const (
	SectionHeader    Section = "HEADER"
	SectionNav       Section = "NAV"
	SectionBiography Section = "BIOGRAPHY"
	SectionAcademic  Section = "ACADEMIC"
	SectionWriter    Section = "WRITER"
	SectionFooter    Section = "FOOTER"
)

// AllSections is the closed set of sections a language file may carry.
var AllSections = []Section{
	SectionHeader,
	SectionNav,
	SectionBiography,
	SectionAcademic,
	SectionWriter,
	SectionFooter,
}

// Marker opens a section block: "=== NAME" on its own line.
const Marker = "=== "

// ErrEmptyContent is returned for a zero-length language file.
var ErrEmptyContent = errors.New("content: empty language file")

// Sections maps a section name to its raw body.
type Sections map[Section]string

// Body returns the raw body of s and whether the file carried it.
func (s Sections) Body(name Section) (string, bool) {
	body, ok := s[name]
	return body, ok
}

// Missing lists the sections the file did not carry, in canonical order.
func (s Sections) Missing() []Section {
	var out []Section
	for _, name := range AllSections {
		if _, ok := s[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Split cuts text into its section blocks. For every known name only the
// first "=== NAME\n" occurrence counts, and its body runs up to the next
// "\n=== " or the end of the input. Unknown or absent sections are simply
// not in the result.
func Split(text string) (Sections, error) {
	if len(text) == 0 {
		return nil, ErrEmptyContent
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	out := make(Sections, len(AllSections))
	for _, name := range AllSections {
		open := Marker + string(name) + "\n"
		start := strings.Index(text, open)
		if start < 0 {
			continue
		}
		body := text[start+len(open):]
		if end := strings.Index(body, "\n"+Marker); end >= 0 {
			body = body[:end]
		}
		out[name] = body
	}
	return out, nil
}
