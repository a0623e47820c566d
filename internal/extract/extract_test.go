package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cv-builder/resume/document"
	"cv-builder/resume/model"
	"cv-builder/resume/render"
)

func renderSample(t *testing.T) []byte {
	t.Helper()
	rec := model.NewRecord()
	rec.FullName = "Ada Lovelace"
	rec.Skills = model.SkillList{"Analytical Engines"}
	data, err := render.NewPDF().Render(context.Background(), document.Build(rec))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return data
}

func TestExtractPDFTextReadsRenderedCV(t *testing.T) {
	text, err := ExtractPDFText(context.Background(), renderSample(t))
	if err != nil {
		t.Fatalf("ExtractPDFText: %v", err)
	}
	compact := strings.ReplaceAll(text, " ", "")
	if !strings.Contains(compact, "AdaLovelace") {
		t.Fatalf("expected full name in text, got %q", text)
	}
	if !strings.Contains(compact, "AnalyticalEngines") {
		t.Fatalf("expected skill in text, got %q", text)
	}
}

func TestExtractPDFTextRejectsEmpty(t *testing.T) {
	if _, err := ExtractPDFText(context.Background(), nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestExtractPDFTextRejectsGarbage(t *testing.T) {
	if _, err := ExtractPDFText(context.Background(), []byte("not a pdf")); err == nil {
		t.Fatal("expected error for non-pdf payload")
	}
}

func TestExtractPDFTextHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractPDFText(ctx, []byte("%PDF-1.3")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtractTextFromBytesSniffsOctetStream(t *testing.T) {
	if _, err := ExtractTextFromBytes(context.Background(), renderSample(t), "application/octet-stream"); err != nil {
		t.Fatalf("expected octet-stream pdf to extract, got %v", err)
	}
}

func TestExtractTextFromBytesRejectsOtherMime(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("hello"), "text/plain; charset=utf-8")
	if err == nil || !strings.Contains(err.Error(), "unsupported mime type: text/plain") {
		t.Fatalf("unexpected error: %v", err)
	}
}
