package document

import "strings"

// Placeholders substituted for blank fields so an unfilled CV still reads as a CV.
const (
	PlaceholderFullName       = "Your Name"
	PlaceholderEmail          = "example@email.com"
	PlaceholderPhone          = "+92 123 456 7890"
	PlaceholderLinkedIn       = "linkedin.com"
	PlaceholderGitHub         = "github.com"
	PlaceholderAddress        = "Your Address"
	PlaceholderDegree         = "Degree"
	PlaceholderInstitution    = "XYZ University"
	PlaceholderGraduationYear = "Year"
	PlaceholderJobTitle       = "Job Title"
	PlaceholderCompany        = "ABC tech"
	PlaceholderDuration       = "2024"
	PlaceholderProject        = "Project"
	PlaceholderSkills         = "Your skills"
	PlaceholderInterests      = "Your interests"
)

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}
