package main

// Render a CV from a JSON or YAML record:
//   go run ./cmd/renderdemo -in ./cmd/renderdemo/testdata/sample.yaml -out ./out/cv.pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cv-builder/internal/extract"
	"cv-builder/resume/document"
	"cv-builder/resume/model"
	"cv-builder/resume/render"
)

func main() {
	inPath := flag.String("in", "", "path to a JSON or YAML resume record (default: built-in sample)")
	outPath := flag.String("out", "./out/"+render.FileName, "output path for generated PDF")
	flag.Parse()

	rec := sampleRecord()
	if *inPath != "" {
		loaded, err := loadRecord(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
			os.Exit(1)
		}
		rec = loaded
	}

	doc := document.Build(rec)
	ctx := context.Background()
	pdfBytes, err := render.NewPDF().Render(ctx, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutputs(*outPath, doc, pdfBytes); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRendered(ctx, pdfBytes, doc); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s\n", *outPath)
}

func loadRecord(path string) (model.ResumeRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeRecord{}, err
	}
	var rec model.ResumeRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &rec)
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&rec)
	}
	if err != nil {
		return model.ResumeRecord{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return rec.Normalize(), nil
}

func writeOutputs(outPath string, doc document.Document, pdfBytes []byte) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, pdfBytes, 0o644); err != nil {
		return err
	}

	modelPath := filepath.Join(dir, "cv_document.json")
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(modelPath, payload, 0o644)
}

// validateRendered checks that the output sniffs as a PDF and that the header
// made it into its text layer.
func validateRendered(ctx context.Context, pdfBytes []byte, doc document.Document) error {
	text, err := extract.ExtractTextFromBytes(ctx, pdfBytes, "")
	if err != nil {
		return err
	}
	header, ok := doc.Section(document.SectionHeader)
	if !ok || len(header.Lines) == 0 {
		return fmt.Errorf("document has no header")
	}
	want := strings.ReplaceAll(header.Lines[0].Text, " ", "")
	if !strings.Contains(strings.ReplaceAll(text, " ", ""), want) {
		return fmt.Errorf("header %q not found in rendered text", header.Lines[0].Text)
	}
	return nil
}

func sampleRecord() model.ResumeRecord {
	return model.ResumeRecord{
		FullName: "Jordan Lee",
		Email:    "jordan.lee@example.com",
		Phone:    "+1-555-0102",
		Address:  "Austin, TX",
		LinkedIn: "linkedin.com/in/jordanlee",
		GitHub:   "github.com/jordanlee",
		Education: []model.EducationEntry{
			{
				Degree:         "BS Computer Science",
				Institution:    "University of Texas",
				GraduationYear: "2016",
				CGPA:           "3.7",
				KeyCourses:     "Distributed Systems, Databases",
			},
		},
		Experience: []model.ExperienceEntry{
			{
				JobTitle: "Senior Backend Engineer",
				Company:  "Northwind",
				Duration: "2021 - Present",
				Highlights: []string{
					"Led migration of billing APIs to Go",
					"Cut p99 latency by 40%",
				},
			},
			{
				JobTitle: "Backend Engineer",
				Company:  "Contoso",
				Duration: "2016 - 2021",
			},
		},
		Projects: []model.ProjectEntry{
			{Name: "pgwatch", Description: "Postgres health dashboard"},
		},
		Skills:    model.SkillList{"Go", "PostgreSQL", "Docker", "Kubernetes"},
		Interests: []string{"Running", "Chess"},
	}
}
