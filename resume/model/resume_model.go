package model

import "strings"

// ResumeRecord represents the in-progress resume edited by a form session.
type ResumeRecord struct {
	FullName   string            `json:"fullName" yaml:"fullName"`
	Email      string            `json:"email" yaml:"email"`
	Phone      string            `json:"phone" yaml:"phone"`
	Address    string            `json:"address" yaml:"address"`
	LinkedIn   string            `json:"linkedin" yaml:"linkedin"`
	GitHub     string            `json:"github" yaml:"github"`
	Education  []EducationEntry  `json:"education" yaml:"education"`
	Experience []ExperienceEntry `json:"experience" yaml:"experience"`
	Projects   []ProjectEntry    `json:"projects" yaml:"projects"`
	Skills     SkillList         `json:"skills" yaml:"skills"`
	Interests  []string          `json:"interests" yaml:"interests"`
}

// EducationEntry represents one education row.
type EducationEntry struct {
	Degree         string `json:"degree" yaml:"degree"`
	Institution    string `json:"institution" yaml:"institution"`
	GraduationYear string `json:"graduationYear" yaml:"graduationYear"`
	CGPA           string `json:"cgpa,omitempty" yaml:"cgpa,omitempty"`
	KeyCourses     string `json:"keyCourses,omitempty" yaml:"keyCourses,omitempty"`
}

// ExperienceEntry represents one work history row.
type ExperienceEntry struct {
	JobTitle   string   `json:"jobTitle" yaml:"jobTitle"`
	Company    string   `json:"company" yaml:"company"`
	Duration   string   `json:"duration" yaml:"duration"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// ProjectEntry represents a notable project.
type ProjectEntry struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// NewRecord returns a record with blank scalars and one blank row per repeatable section.
func NewRecord() ResumeRecord {
	return ResumeRecord{
		Education:  []EducationEntry{{}},
		Experience: []ExperienceEntry{{}},
		Projects:   []ProjectEntry{},
		Skills:     SkillList{""},
		Interests:  []string{""},
	}
}

// Clone returns a deep copy of the record.
func (r ResumeRecord) Clone() ResumeRecord {
	out := r
	out.Education = append([]EducationEntry(nil), r.Education...)
	out.Experience = make([]ExperienceEntry, len(r.Experience))
	for i, exp := range r.Experience {
		exp.Highlights = append([]string(nil), exp.Highlights...)
		out.Experience[i] = exp
	}
	out.Projects = append([]ProjectEntry(nil), r.Projects...)
	out.Skills = append(SkillList(nil), r.Skills...)
	out.Interests = append([]string(nil), r.Interests...)
	return out
}

// Normalize restores the never-empty invariant on lists decoded from external input.
func (r ResumeRecord) Normalize() ResumeRecord {
	out := r.Clone()
	if len(out.Education) == 0 {
		out.Education = []EducationEntry{{}}
	}
	if len(out.Experience) == 0 {
		out.Experience = []ExperienceEntry{{}}
	}
	if out.Projects == nil {
		out.Projects = []ProjectEntry{}
	}
	if len(out.Skills) == 0 {
		out.Skills = SkillList{""}
	}
	if len(out.Interests) == 0 {
		out.Interests = []string{""}
	}
	return out
}

// IsBlank reports whether every field of the entry is empty.
func (e EducationEntry) IsBlank() bool {
	return isBlank(e.Degree) && isBlank(e.Institution) && isBlank(e.GraduationYear) &&
		isBlank(e.CGPA) && isBlank(e.KeyCourses)
}

// IsBlank reports whether every field of the project is empty.
func (p ProjectEntry) IsBlank() bool {
	return isBlank(p.Name) && isBlank(p.Description)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
