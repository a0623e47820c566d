package form

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed fields.yaml
var fieldsYAML []byte

// Section declares one form section and its editable inputs.
type Section struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Category Category `yaml:"category,omitempty" json:"category,omitempty"`
	Fields   []Field  `yaml:"fields" json:"fields"`
}

// Field declares one editable input.
type Field struct {
	Name        string `yaml:"name" json:"name"`
	Label       string `yaml:"label,omitempty" json:"label"`
	Type        string `yaml:"type,omitempty" json:"type"`
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder"`
}

var (
	sectionsOnce sync.Once
	sections     []Section
	sectionsErr  error
)

// Sections returns the static section declaration with labels filled in.
func Sections() ([]Section, error) {
	sectionsOnce.Do(func() {
		sections, sectionsErr = parseSections(fieldsYAML)
	})
	if sectionsErr != nil {
		return nil, sectionsErr
	}
	out := make([]Section, len(sections))
	for i, s := range sections {
		s.Fields = append([]Field(nil), s.Fields...)
		out[i] = s
	}
	return out, nil
}

func parseSections(raw []byte) ([]Section, error) {
	var doc struct {
		Sections []Section `yaml:"sections"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse form fields: %w", err)
	}
	for i := range doc.Sections {
		s := &doc.Sections[i]
		if s.Category != "" && !s.Category.valid() {
			return nil, fmt.Errorf("section %s: %w: %q", s.ID, ErrUnknownCategory, s.Category)
		}
		for j := range s.Fields {
			fld := &s.Fields[j]
			if fld.Label == "" {
				fld.Label = Label(fld.Name)
			}
			if fld.Type == "" {
				fld.Type = "text"
			}
			if fld.Placeholder == "" {
				fld.Placeholder = fld.Label
			}
		}
	}
	return doc.Sections, nil
}

// Label derives a display label from a field name: the first letter is
// upper-cased and a space is inserted before every upper-case letter.
func Label(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
