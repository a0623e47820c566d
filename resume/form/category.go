package form

import (
	"fmt"
	"strings"

	"cv-builder/resume/model"
)

// Category names a repeatable section of the record.
type Category string

const (
	CategoryEducation  Category = "education"
	CategoryExperience Category = "experience"
	CategoryProjects   Category = "projects"
	CategorySkills     Category = "skills"
	CategoryInterests  Category = "interests"
)

// Patch maps entry field names to replacement values. Keys absent from the
// patch leave the entry unchanged.
type Patch map[string]string

// ParseCategory resolves a category name.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

func (c Category) valid() bool {
	switch c {
	case CategoryEducation, CategoryExperience, CategoryProjects, CategorySkills, CategoryInterests:
		return true
	}
	return false
}

// IsScalar reports whether entries of the category are plain strings.
func (c Category) IsScalar() bool {
	return c == CategorySkills || c == CategoryInterests
}

// KeepsOne reports whether the category must never become empty.
func (c Category) KeepsOne() bool {
	return c != CategoryProjects
}

func (c Category) length(rec *model.ResumeRecord) int {
	switch c {
	case CategoryEducation:
		return len(rec.Education)
	case CategoryExperience:
		return len(rec.Experience)
	case CategoryProjects:
		return len(rec.Projects)
	case CategorySkills:
		return len(rec.Skills)
	case CategoryInterests:
		return len(rec.Interests)
	}
	return 0
}

func applyEducation(entry *model.EducationEntry, patch Patch) error {
	for key, value := range patch {
		switch key {
		case "degree":
			entry.Degree = value
		case "institution":
			entry.Institution = value
		case "graduationYear":
			entry.GraduationYear = value
		case "cgpa":
			entry.CGPA = value
		case "keyCourses":
			entry.KeyCourses = value
		default:
			return fmt.Errorf("%w: education.%s", ErrUnknownField, key)
		}
	}
	return nil
}

func applyExperience(entry *model.ExperienceEntry, patch Patch) error {
	for key, value := range patch {
		switch key {
		case "jobTitle":
			entry.JobTitle = value
		case "company":
			entry.Company = value
		case "duration":
			entry.Duration = value
		default:
			return fmt.Errorf("%w: experience.%s", ErrUnknownField, key)
		}
	}
	return nil
}

func applyProject(entry *model.ProjectEntry, patch Patch) error {
	for key, value := range patch {
		switch key {
		case "name":
			entry.Name = value
		case "description":
			entry.Description = value
		default:
			return fmt.Errorf("%w: projects.%s", ErrUnknownField, key)
		}
	}
	return nil
}
