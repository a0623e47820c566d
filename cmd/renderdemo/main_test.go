package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cv-builder/resume/document"
	"cv-builder/resume/render"
)

func TestLoadRecordYAMLSplitsSkills(t *testing.T) {
	rec, err := loadRecord(filepath.Join("testdata", "sample.yaml"))
	if err != nil {
		t.Fatalf("loadRecord: %v", err)
	}
	if rec.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", rec.FullName)
	}
	if strings.Join(rec.Skills, "|") != "Mathematics|Poetry|Analysis" {
		t.Fatalf("unexpected skills %v", rec.Skills)
	}
	if len(rec.Projects) != 0 {
		t.Fatalf("expected no projects, got %d", len(rec.Projects))
	}
}

func TestLoadRecordJSONRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"fullName":"A","nickname":"B"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadRecord(path); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestWriteOutputsAndValidate(t *testing.T) {
	doc := document.Build(sampleRecord())
	data, err := render.NewPDF().Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := filepath.Join(t.TempDir(), "nested", render.FileName)
	if err := writeOutputs(out, doc, data); err != nil {
		t.Fatalf("writeOutputs: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(out), "cv_document.json")); err != nil {
		t.Fatalf("expected document json: %v", err)
	}
	if err := validateRendered(context.Background(), data, doc); err != nil {
		t.Fatalf("validateRendered: %v", err)
	}
}

func TestValidateRenderedRejectsNonPDF(t *testing.T) {
	doc := document.Build(sampleRecord())
	err := validateRendered(context.Background(), []byte("<html>cv</html>"), doc)
	if err == nil || !strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("expected unsupported mime type error, got %v", err)
	}
}
