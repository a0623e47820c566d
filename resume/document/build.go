package document

import (
	"fmt"
	"strings"

	"cv-builder/resume/model"
)

// Build maps a record snapshot to a Document. It never fails: blank fields
// are replaced with their placeholders.
func Build(rec model.ResumeRecord) Document {
	sections := []Section{
		buildHeader(rec),
		buildContact(rec),
		buildEducation(rec.Education),
		buildExperience(rec.Experience),
	}
	if projects, ok := buildProjects(rec.Projects); ok {
		sections = append(sections, projects)
	}
	sections = append(sections,
		buildBullets(SectionSkills, "Skills", rec.Skills, PlaceholderSkills),
		buildBullets(SectionInterests, "Interests", rec.Interests, PlaceholderInterests),
	)

	return Document{
		PageSize: PageSizeA4,
		Margin:   PageMargin,
		Font:     DefaultFont,
		FontSize: DefaultFontSize,
		Sections: sections,
	}
}

func buildHeader(rec model.ResumeRecord) Section {
	return Section{
		Kind:  SectionHeader,
		Lines: []Line{textLine(orPlaceholder(rec.FullName, PlaceholderFullName))},
	}
}

func buildContact(rec model.ResumeRecord) Section {
	return Section{
		Kind:  SectionContact,
		Title: "Contact Information",
		Lines: []Line{
			textLine("Email: " + orPlaceholder(rec.Email, PlaceholderEmail)),
			textLine("Phone: " + orPlaceholder(rec.Phone, PlaceholderPhone)),
			textLine("LinkedIn: " + orPlaceholder(rec.LinkedIn, PlaceholderLinkedIn)),
			textLine("GitHub: " + orPlaceholder(rec.GitHub, PlaceholderGitHub)),
			textLine("Address: " + orPlaceholder(rec.Address, PlaceholderAddress)),
		},
	}
}

func buildEducation(items []model.EducationEntry) Section {
	lines := make([]Line, 0, len(items))
	for _, edu := range items {
		line := textLine(fmt.Sprintf("%s - %s (%s)",
			orPlaceholder(edu.Degree, PlaceholderDegree),
			orPlaceholder(edu.Institution, PlaceholderInstitution),
			orPlaceholder(edu.GraduationYear, PlaceholderGraduationYear),
		))
		if cgpa := strings.TrimSpace(edu.CGPA); cgpa != "" {
			line.Details = append(line.Details, "CGPA: "+cgpa)
		}
		if courses := strings.TrimSpace(edu.KeyCourses); courses != "" {
			line.Details = append(line.Details, "Key Courses: "+courses)
		}
		lines = append(lines, line)
	}
	return Section{Kind: SectionEducation, Title: "Education", Lines: lines}
}

func buildExperience(items []model.ExperienceEntry) Section {
	lines := make([]Line, 0, len(items))
	for _, exp := range items {
		title := orPlaceholder(exp.JobTitle, PlaceholderJobTitle)
		line := Line{
			Text: fmt.Sprintf("%s - %s (%s)",
				title,
				orPlaceholder(exp.Company, PlaceholderCompany),
				orPlaceholder(exp.Duration, PlaceholderDuration),
			),
			Lead:  title,
			Style: LineText,
		}
		for _, h := range exp.Highlights {
			if h = strings.TrimSpace(h); h != "" {
				line.Details = append(line.Details, "- "+h)
			}
		}
		lines = append(lines, line)
	}
	return Section{Kind: SectionExperience, Title: "Work Experience", Lines: lines}
}

func buildProjects(items []model.ProjectEntry) (Section, bool) {
	var lines []Line
	for _, p := range items {
		if p.IsBlank() {
			continue
		}
		name := orPlaceholder(p.Name, PlaceholderProject)
		line := Line{Text: name, Lead: name, Style: LineText}
		if desc := strings.TrimSpace(p.Description); desc != "" {
			line.Details = []string{"- " + desc}
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return Section{}, false
	}
	return Section{Kind: SectionProjects, Title: "Projects", Lines: lines}, true
}

// buildBullets renders list entries verbatim, one bullet each. Blank rows
// left by the form are skipped.
func buildBullets(kind SectionKind, title string, items []string, placeholder string) Section {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		lines = append(lines, bulletLine(item))
	}
	if len(lines) == 0 {
		lines = append(lines, bulletLine(placeholder))
	}
	return Section{Kind: kind, Title: title, Lines: lines}
}

func textLine(text string) Line {
	return Line{Text: text, Style: LineText}
}

func bulletLine(text string) Line {
	return Line{Text: "- " + text, Style: LineBullet}
}
