package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cv-builder/resume/form"
	"cv-builder/resume/model"
)

// wizard walks the form sections and applies each answer through the form API.
type wizard struct {
	p    prompter
	form *form.Form
}

func newWizard(p prompter, opts form.Options) *wizard {
	return &wizard{p: p, form: form.New(opts)}
}

// Run prompts for every section, then submits. Required fields left blank
// are asked again until submit succeeds.
func (w *wizard) Run(ctx context.Context) (model.ResumeRecord, error) {
	sections, err := form.Sections()
	if err != nil {
		return model.ResumeRecord{}, err
	}
	for _, section := range sections {
		if err := w.p.Info(ctx, "== "+section.Title+" =="); err != nil {
			return model.ResumeRecord{}, err
		}
		if err := w.fillSection(ctx, section); err != nil {
			return model.ResumeRecord{}, fmt.Errorf("%s: %w", section.ID, err)
		}
	}

	for {
		rec, err := w.form.Submit()
		if err == nil {
			return rec, nil
		}
		var required *form.RequiredError
		if !errors.As(err, &required) {
			return model.ResumeRecord{}, err
		}
		if err := w.p.Info(ctx, "Please fill in: "+strings.Join(required.Fields, ", ")); err != nil {
			return model.ResumeRecord{}, err
		}
		for _, name := range required.Fields {
			value, err := w.p.Input(ctx, form.Label(name), "required", "")
			if err != nil {
				return model.ResumeRecord{}, err
			}
			if err := w.form.SetScalar(name, value); err != nil {
				return model.ResumeRecord{}, err
			}
		}
	}
}

func (w *wizard) fillSection(ctx context.Context, section form.Section) error {
	switch {
	case section.Category == "":
		return w.fillScalars(ctx, section.Fields)
	case section.Category.IsScalar():
		return w.fillScalarList(ctx, section)
	default:
		return w.fillEntries(ctx, section)
	}
}

func (w *wizard) fillScalars(ctx context.Context, fields []form.Field) error {
	for _, field := range fields {
		value, err := w.p.Input(ctx, field.Label, field.Placeholder, "")
		if err != nil {
			return err
		}
		if err := w.form.SetScalar(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (w *wizard) fillScalarList(ctx context.Context, section form.Section) error {
	cat := section.Category
	label := section.Title
	help := ""
	if len(section.Fields) > 0 {
		label = section.Fields[0].Label
		help = section.Fields[0].Placeholder
	}

	if cat == form.CategorySkills && w.form.Options().SkillsInput == form.SkillsFreeText {
		value, err := w.p.Input(ctx, label, help, "")
		if err != nil {
			return err
		}
		return w.form.SetScalar("skills", value)
	}

	// One entry per prompt; a blank answer ends the list.
	for index := 0; ; index++ {
		value, err := w.p.Input(ctx, fmt.Sprintf("%s #%d", label, index+1), "leave blank to finish", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			return nil
		}
		if index == 0 {
			err = w.form.SetListScalar(cat, 0, value)
		} else {
			_, err = w.form.AppendScalar(cat, value)
		}
		if err != nil {
			return err
		}
	}
}

func (w *wizard) fillEntries(ctx context.Context, section form.Section) error {
	cat := section.Category
	index := 0
	if !cat.KeepsOne() {
		add, err := w.p.Confirm(ctx, "Add "+strings.ToLower(section.Title)+"?", false)
		if err != nil || !add {
			return err
		}
		if index, err = w.form.AppendListItem(cat); err != nil {
			return err
		}
	}

	for {
		if err := w.fillEntry(ctx, cat, index, section.Fields); err != nil {
			return err
		}
		more, err := w.p.Confirm(ctx, "Add another entry to "+section.Title+"?", false)
		if err != nil || !more {
			return err
		}
		if index, err = w.form.AppendListItem(cat); err != nil {
			return err
		}
	}
}

func (w *wizard) fillEntry(ctx context.Context, cat form.Category, index int, fields []form.Field) error {
	patch := form.Patch{}
	var highlights []string
	for _, field := range fields {
		if field.Type == "list" {
			raw, err := w.p.TextArea(ctx, field.Label, "one per line")
			if err != nil {
				return err
			}
			highlights = splitLines(raw)
			continue
		}
		value, err := w.p.Input(ctx, field.Label, field.Placeholder, "")
		if err != nil {
			return err
		}
		patch[field.Name] = value
	}
	if err := w.form.UpdateListItem(cat, index, patch); err != nil {
		return err
	}
	if len(highlights) > 0 {
		return w.form.SetHighlights(index, highlights)
	}
	return nil
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
