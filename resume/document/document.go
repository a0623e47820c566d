// Package document maps a ResumeRecord to a renderer-agnostic document tree.
package document

import "strings"

// SectionKind identifies a section of the CV.
type SectionKind string

const (
	SectionHeader     SectionKind = "header"
	SectionContact    SectionKind = "contact"
	SectionEducation  SectionKind = "education"
	SectionExperience SectionKind = "experience"
	SectionProjects   SectionKind = "projects"
	SectionSkills     SectionKind = "skills"
	SectionInterests  SectionKind = "interests"
)

// LineStyle selects how a line is laid out.
type LineStyle string

const (
	LineText   LineStyle = "text"
	LineBullet LineStyle = "bullet"
)

// Document is a single-page-oriented layout description. Pagination of
// overflowing content is left to the renderer.
type Document struct {
	PageSize string    `json:"pageSize"`
	Margin   float64   `json:"margin"`
	Font     string    `json:"font"`
	FontSize float64   `json:"fontSize"`
	Sections []Section `json:"sections"`
}

// Section is a titled, ordered group of display lines.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Title string      `json:"title,omitempty"`
	Lines []Line      `json:"lines"`
}

// Line is one display line per list entry. Lead, when set, is a prefix of
// Text shown bold. Details are the entry's optional sub-lines (CGPA, key
// courses, highlights, project description), laid out indented beneath it.
type Line struct {
	Text    string    `json:"text"`
	Lead    string    `json:"lead,omitempty"`
	Style   LineStyle `json:"style"`
	Details []string  `json:"details,omitempty"`
}

// Section returns the first section of the given kind.
func (d Document) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Texts returns the text of every line in the section.
func (s Section) Texts() []string {
	out := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		out = append(out, l.Text)
	}
	return out
}

// Rest returns the part of Text after Lead.
func (l Line) Rest() string {
	return strings.TrimPrefix(l.Text, l.Lead)
}
