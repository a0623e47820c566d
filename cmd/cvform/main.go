package main

// Fill in a CV interactively and write it as a PDF:
//   go run ./cmd/cvform -out ./out/cv.pdf

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"cv-builder/resume/document"
	"cv-builder/resume/form"
	"cv-builder/resume/render"
)

func main() {
	outPath := flag.String("out", render.FileName, "output path for generated PDF")
	skillsInput := flag.String("skills", string(form.SkillsStructured), "skills entry mode: structured or freetext")
	required := flag.String("required", "fullName", "comma-separated fields that must be filled in")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts, err := parseOptions(*skillsInput, *required)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(2)
	}

	w := newWizard(&surveyPrompter{out: os.Stdout}, opts)
	rec, err := w.Run(ctx)
	if err != nil {
		if errors.Is(err, errAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "form failed: %v\n", err)
		os.Exit(1)
	}

	data, err := render.NewPDF().Render(ctx, document.Build(rec))
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", *outPath)
}

// parseOptions maps the -skills and -required flags to form options.
func parseOptions(skills, required string) (form.Options, error) {
	mode, err := form.ParseSkillsInput(skills)
	if err != nil {
		return form.Options{}, fmt.Errorf("-skills: %w", err)
	}
	opts := form.Options{SkillsInput: mode}
	for _, name := range strings.Split(required, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			opts.Required = append(opts.Required, trimmed)
		}
	}
	return opts, nil
}
